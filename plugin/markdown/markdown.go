// Package markdown renders trip notes and AI tips to HTML.
package markdown

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Service renders markdown to HTML.
type Service interface {
	Render(source string) (string, error)
}

type service struct {
	md goldmark.Markdown
}

// NewService creates a markdown rendering service with GFM extensions.
func NewService() Service {
	return &service{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

func (s *service) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(source), &buf); err != nil {
		return "", errors.Wrap(err, "failed to render markdown")
	}
	return buf.String(), nil
}
