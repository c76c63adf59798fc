// version.go - Versionsinformation fuer den Build
package version

// Version wird beim Release-Build per -ldflags ueberschrieben.
var Version string = "0.0.0"
