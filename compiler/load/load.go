package load

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// LoadFile parses the schema file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: reading schema: %w", err)
	}
	return Parse(path, bytes.NewReader(data))
}

// ParseString parses schema source held in memory.
func ParseString(src string) (*File, error) {
	return Parse("", strings.NewReader(src))
}

// Format renders f in canonical schema syntax. Parsing the result yields
// a tree equal to f, positions aside.
func Format(f *File) []byte {
	var b bytes.Buffer
	if len(f.Namespace) > 0 {
		fmt.Fprintf(&b, "namespace %s;\n\n", strings.Join(f.Namespace, "."))
	}
	for i, d := range f.Decls {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch d := d.(type) {
		case *Enum:
			fmt.Fprintf(&b, "enum %s : %s {\n", d.Name, d.Base)
			for j, v := range d.Values {
				sep := ","
				if j == len(d.Values)-1 {
					sep = ""
				}
				fmt.Fprintf(&b, "\t%s%s\n", v, sep)
			}
			b.WriteString("}\n")
		case *Table:
			fmt.Fprintf(&b, "table %s {\n", d.Name)
			for _, fd := range d.Fields {
				fmt.Fprintf(&b, "\t%s: %s", fd.Name, fd.Type)
				if fd.Default != nil {
					fmt.Fprintf(&b, " = %s", fd.Default)
				}
				b.WriteString(";\n")
			}
			b.WriteString("}\n")
		}
	}
	if f.RootType != "" {
		fmt.Fprintf(&b, "\nroot_type %s;\n", f.RootType)
	}
	return b.Bytes()
}
