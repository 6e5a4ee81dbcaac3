// Package document implements the dual on-disk codec for a Bean: the
// frontmatter form (a delimited YAML header followed by a free-text body
// that becomes Description) and the flat form (one bare YAML document, no
// delimiters, Description inline like any other field).
//
// This follows the markdown+YAML-frontmatter convention common to
// task-file formats, expressed over Bean's fixed schema via yaml struct
// tags rather than a dynamic field map.
package document

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/types"
)

// Form distinguishes the two accepted on-disk shapes. The codec always
// preserves whichever Form a file was parsed as when re-emitting it.
type Form int

const (
	Frontmatter Form = iota
	Flat
)

const delim = "---"

// Parse detects and decodes a bean document. A file is frontmatter form
// iff its content (ignoring leading blank lines) begins with a line that
// is exactly "---"; everything else is flat form.
func Parse(data []byte) (*types.Bean, Form, error) {
	text := string(data)
	trimmed := strings.TrimLeft(text, "\n")
	if !strings.HasPrefix(trimmed, delim+"\n") && trimmed != delim {
		var b types.Bean
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, Flat, beanerr.Wrapf(beanerr.ErrValidation, "parse flat document: %v", err)
		}
		return &b, Flat, nil
	}

	header, body, err := splitFrontmatter(trimmed)
	if err != nil {
		return nil, Frontmatter, err
	}

	var b types.Bean
	if err := yaml.Unmarshal([]byte(header), &b); err != nil {
		return nil, Frontmatter, beanerr.Wrapf(beanerr.ErrValidation, "parse frontmatter header: %v", err)
	}
	b.Description = types.LongText(body)
	return &b, Frontmatter, nil
}

// splitFrontmatter locates the first "---" / "---" delimiter pair and
// returns the YAML block between them and the body text that follows.
// Only the first pair bounds the header, so a body that itself contains
// literal "---" lines round-trips unchanged.
func splitFrontmatter(trimmed string) (header, body string, err error) {
	lines := strings.Split(trimmed, "\n")
	if len(lines) == 0 || lines[0] != delim {
		return "", "", beanerr.Wrapf(beanerr.ErrValidation, "missing opening frontmatter delimiter")
	}
	for i := 1; i < len(lines); i++ {
		if lines[i] == delim {
			header = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			body = strings.TrimPrefix(body, "\n")
			body = strings.TrimSuffix(body, "\n")
			return header, body, nil
		}
	}
	return "", "", beanerr.Wrapf(beanerr.ErrValidation, "missing closing frontmatter delimiter")
}

// Emit renders a bean in the given form.
func Emit(b *types.Bean, form Form) ([]byte, error) {
	switch form {
	case Flat:
		return emitFlat(b)
	default:
		return emitFrontmatter(b)
	}
}

func emitFlat(b *types.Bean) ([]byte, error) {
	out, err := yaml.Marshal(b)
	if err != nil {
		return nil, beanerr.Wrapf(beanerr.ErrIO, "marshal flat document: %v", err)
	}
	return out, nil
}

func emitFrontmatter(b *types.Bean) ([]byte, error) {
	headerBean := b.Clone()
	body := string(headerBean.Description)
	headerBean.Description = ""

	header, err := yaml.Marshal(headerBean)
	if err != nil {
		return nil, beanerr.Wrapf(beanerr.ErrIO, "marshal frontmatter header: %v", err)
	}

	var sb strings.Builder
	sb.WriteString(delim)
	sb.WriteString("\n")
	sb.Write(header)
	sb.WriteString(delim)
	sb.WriteString("\n")
	if body != "" {
		sb.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString("\n")
		}
	}
	return []byte(sb.String()), nil
}
