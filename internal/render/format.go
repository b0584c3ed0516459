package render

import "fmt"

type Format int8

const (
	HTML Format = iota
	CSV
	Text
)

func ParseFormat(text string) (Format, error) {
	switch text {
	case "html":
		return HTML, nil
	case "csv":
		return CSV, nil
	case "text", "txt":
		return Text, nil
	default:
		return 0, fmt.Errorf("invalid format: %q", text)
	}
}

func (f Format) String() string {
	switch f {
	case HTML:
		return "html"
	case CSV:
		return "csv"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Format(%d)", int8(f))
	}
}

func (f Format) ContentType() string {
	switch f {
	case HTML:
		return "text/html"
	case CSV:
		return "text/csv"
	default:
		return "text/plain"
	}
}

func (f Format) Extension() string {
	switch f {
	case HTML:
		return ".html"
	case CSV:
		return ".csv"
	default:
		return ".txt"
	}
}
