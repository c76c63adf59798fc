// checkpoint.go - Binaerformat fuer Modell-Checkpoints
//
// Dieses Modul enthaelt:
// - Metadata: Architektur- und Trainings-Metadaten (JSON im Header)
// - Checkpoint: Metadaten plus benannte Gewichtstensoren
// - Write/Read: Serialisierung mit waehlbarem Datentyp (f32/f16/bf16)
//
// Layout: Magic "UBCP", Version, JSON-Metadaten, dann pro Tensor Name,
// Shape, Datentyp und Rohdaten. Alles Little-Endian.
package checkpoint

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"

	"github.com/7blacky7/uebersetzer/ml"
)

const (
	magic   = "UBCP"
	version = uint32(1)
)

// Tensor payload encodings.
const (
	DTypeF32 uint32 = iota
	DTypeF16
	DTypeBF16
)

var (
	ErrBadMagic       = errors.New("checkpoint: not a checkpoint file")
	ErrBadVersion     = errors.New("checkpoint: unsupported format version")
	ErrUnknownDType   = errors.New("checkpoint: unknown tensor data type")
	ErrMissingTensor  = errors.New("checkpoint: missing tensor")
)

// Metadata describes the architecture and training state of a checkpoint.
// The field set mirrors the training configuration surface.
type Metadata struct {
	Architecture    string  `json:"architecture"`
	NumLayers       int     `json:"num_layers"`
	DModel          int     `json:"d_model"`
	DFF             int     `json:"dff"`
	NumHeads        int     `json:"num_heads"`
	DropoutRate     float32 `json:"dropout_rate"`
	SourceVocabSize int     `json:"source_vocab_size"`
	TargetVocabSize int     `json:"target_vocab_size"`
	Step            int     `json:"step"`
	Loss            float64 `json:"loss"`
}

// Checkpoint is a set of named weight tensors plus metadata.
type Checkpoint struct {
	Meta    Metadata
	Tensors map[string]*ml.Tensor
}

// Tensor returns a named tensor or ErrMissingTensor.
func (c *Checkpoint) Tensor(name string) (*ml.Tensor, error) {
	if t, ok := c.Tensors[name]; ok {
		return t, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrMissingTensor, name)
}

// Write serializes the checkpoint to path. dtype selects the on-disk
// tensor encoding; f16 halves the file size at negligible quality cost.
func Write(path string, c *Checkpoint, dtype uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := write(w, c, dtype); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}

	return f.Sync()
}

func write(w io.Writer, c *Checkpoint, dtype uint32) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return err
	}

	meta, err := json.Marshal(c.Meta)
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(meta))); err != nil {
		return err
	}
	if _, err := w.Write(meta); err != nil {
		return err
	}

	// stable tensor order
	names := make([]string, 0, len(c.Tensors))
	for name := range c.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := binary.Write(w, binary.LittleEndian, uint32(len(names))); err != nil {
		return err
	}

	for _, name := range names {
		t := c.Tensors[name]
		if err := binary.Write(w, binary.LittleEndian, uint32(len(name))); err != nil {
			return err
		}
		if _, err := w.Write([]byte(name)); err != nil {
			return err
		}

		shape := t.Shape()
		if err := binary.Write(w, binary.LittleEndian, uint32(len(shape))); err != nil {
			return err
		}
		for _, d := range shape {
			if err := binary.Write(w, binary.LittleEndian, uint64(d)); err != nil {
				return err
			}
		}

		if err := binary.Write(w, binary.LittleEndian, dtype); err != nil {
			return err
		}

		data := t.Data()
		switch dtype {
		case DTypeF32:
			if err := binary.Write(w, binary.LittleEndian, data); err != nil {
				return err
			}
		case DTypeF16:
			f16s := make([]uint16, len(data))
			for i := range data {
				f16s[i] = float16.Fromfloat32(data[i]).Bits()
			}
			if err := binary.Write(w, binary.LittleEndian, f16s); err != nil {
				return err
			}
		case DTypeBF16:
			if _, err := w.Write(bfloat16.EncodeFloat32(data)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %d", ErrUnknownDType, dtype)
		}
	}

	return nil
}

// Read deserializes a checkpoint from path. Tensors are decoded to float32
// regardless of their on-disk encoding.
func Read(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}
	defer f.Close()

	return read(bufio.NewReader(f))
}

func read(r io.Reader) (*Checkpoint, error) {
	head := make([]byte, 4)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("checkpoint: %w", err)
	}
	if string(head) != magic {
		return nil, ErrBadMagic
	}

	var v uint32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return nil, err
	}
	if v != version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}

	var metaLen uint64
	if err := binary.Read(r, binary.LittleEndian, &metaLen); err != nil {
		return nil, err
	}

	meta := make([]byte, metaLen)
	if _, err := io.ReadFull(r, meta); err != nil {
		return nil, err
	}

	c := Checkpoint{Tensors: make(map[string]*ml.Tensor)}
	if err := json.Unmarshal(meta, &c.Meta); err != nil {
		return nil, fmt.Errorf("checkpoint: parsing metadata: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	for i := uint32(0); i < count; i++ {
		var nameLen uint32
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, err
		}

		var ndims uint32
		if err := binary.Read(r, binary.LittleEndian, &ndims); err != nil {
			return nil, err
		}

		shape := make([]int, ndims)
		n := 1
		for d := range shape {
			var dim uint64
			if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
				return nil, err
			}
			shape[d] = int(dim)
			n *= int(dim)
		}

		var dtype uint32
		if err := binary.Read(r, binary.LittleEndian, &dtype); err != nil {
			return nil, err
		}

		var f32s []float32
		switch dtype {
		case DTypeF32:
			f32s = make([]float32, n)
			if err := binary.Read(r, binary.LittleEndian, f32s); err != nil {
				return nil, err
			}
		case DTypeF16:
			f16s := make([]uint16, n)
			if err := binary.Read(r, binary.LittleEndian, f16s); err != nil {
				return nil, err
			}
			f32s = make([]float32, n)
			for i := range f16s {
				f32s[i] = float16.Frombits(f16s[i]).Float32()
			}
		case DTypeBF16:
			u8s := make([]byte, n*2)
			if _, err := io.ReadFull(r, u8s); err != nil {
				return nil, err
			}
			f32s = bfloat16.DecodeFloat32(u8s)
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownDType, dtype)
		}

		t, err := ml.FromSlice(f32s, shape...)
		if err != nil {
			return nil, err
		}
		c.Tensors[string(name)] = t
	}

	return &c, nil
}
