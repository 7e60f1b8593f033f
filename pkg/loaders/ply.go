package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// PLYElement is one element block of the header, e.g. "vertex" or "face"
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Elements []PLYElement
}

// PLYData contains the mesh loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions
	Normals  []core.Vec3 // Per-vertex normals, empty if not present
	Faces    []int       // Triangle indices, 3 per triangle
}

// LoadPLY loads a PLY file and returns its vertices and triangulated faces
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParsePLY reads an ASCII or binary PLY stream. Polygons with more than
// three vertices are split into triangle fans.
func ParsePLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var body plyReader
	switch header.Format {
	case "ascii":
		body = &asciiPLYReader{reader: reader}
	case "binary_little_endian":
		body = &binaryPLYReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		body = &binaryPLYReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		if err := readPLYElement(body, element, data); err != nil {
			return nil, fmt.Errorf("failed to read %s element: %w", element.Name, err)
		}
	}

	for _, idx := range data.Faces {
		if idx < 0 || idx >= len(data.Vertices) {
			return nil, fmt.Errorf("face index %d out of range for %d vertices", idx, len(data.Vertices))
		}
	}
	return data, nil
}

// parsePLYHeader consumes the header up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	first := true

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended early: %w", err)
		}
		parts := strings.Fields(line)

		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			first = false
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) < 2 {
				return nil, fmt.Errorf("invalid format line %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop := PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}
		if plyTypeSize(prop.ListType) == 0 || plyTypeSize(prop.Type) == 0 {
			return PLYProperty{}, fmt.Errorf("unknown type in list property %s", prop.Name)
		}
		return prop, nil
	}

	prop := PLYProperty{Type: parts[0], Name: parts[1]}
	if plyTypeSize(prop.Type) == 0 {
		return PLYProperty{}, fmt.Errorf("unknown type %q for property %s", prop.Type, prop.Name)
	}
	return prop, nil
}

func readPLYElement(body plyReader, element PLYElement, data *PLYData) error {
	vertexField := make(map[string]int)
	for i, prop := range element.Properties {
		vertexField[prop.Name] = i
	}
	_, hasNormals := vertexField["nx"]

	values := make([]float64, len(element.Properties))
	for n := 0; n < element.Count; n++ {
		for i, prop := range element.Properties {
			if !prop.IsList {
				v, err := body.scalar(prop.Type)
				if err != nil {
					return err
				}
				values[i] = v
				continue
			}

			count, err := body.scalar(prop.ListType)
			if err != nil {
				return err
			}
			if count < 0 {
				return fmt.Errorf("negative list length %v for %s", count, prop.Name)
			}
			list := make([]int, int(count))
			for k := range list {
				v, err := body.scalar(prop.Type)
				if err != nil {
					return err
				}
				list[k] = int(v)
			}
			if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
				for k := 1; k+1 < len(list); k++ {
					data.Faces = append(data.Faces, list[0], list[k], list[k+1])
				}
			}
		}
		if err := body.endRecord(); err != nil {
			return err
		}

		if element.Name == "vertex" {
			data.Vertices = append(data.Vertices, core.NewVec3(
				field(values, vertexField, "x"), field(values, vertexField, "y"), field(values, vertexField, "z"),
			))
			if hasNormals {
				data.Normals = append(data.Normals, core.NewVec3(
					field(values, vertexField, "nx"), field(values, vertexField, "ny"), field(values, vertexField, "nz"),
				))
			}
		}
	}
	return nil
}

func field(values []float64, index map[string]int, name string) float64 {
	if i, ok := index[name]; ok {
		return values[i]
	}
	return 0
}

// plyTypeSize returns the size in bytes of a PLY scalar type, or 0 if unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "int32", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

type plyReader interface {
	scalar(dataType string) (float64, error)
	endRecord() error
}

type binaryPLYReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryPLYReader) scalar(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.reader, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

func (b *binaryPLYReader) endRecord() error {
	return nil
}

// asciiPLYReader reads one whitespace separated record per line
type asciiPLYReader struct {
	reader *bufio.Reader
	fields []string
}

func (a *asciiPLYReader) scalar(dataType string) (float64, error) {
	for len(a.fields) == 0 {
		line, err := a.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return 0, err
		}
		a.fields = strings.Fields(line)
	}

	token := a.fields[0]
	a.fields = a.fields[1:]
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, token)
	}
	return v, nil
}

func (a *asciiPLYReader) endRecord() error {
	if len(a.fields) != 0 {
		return fmt.Errorf("unexpected trailing values %v", a.fields)
	}
	return nil
}
