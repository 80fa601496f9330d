// Package content serves the public site data embedded in the binary.
package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var raw []byte

type Service struct {
	Slug            string `yaml:"slug" json:"slug"`
	Name            string `yaml:"name" json:"name"`
	Summary         string `yaml:"summary" json:"summary"`
	DurationMinutes int    `yaml:"duration_minutes" json:"duration_minutes"`
}

type GalleryItem struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	// Object is the key of the original image, relative to the gallery prefix.
	Object string `yaml:"object" json:"-"`
	Alt    string `yaml:"alt" json:"alt"`
}

type Testimonial struct {
	Author string `yaml:"author" json:"author"`
	Text   string `yaml:"text" json:"text"`
	Rating int    `yaml:"rating" json:"rating"`
}

type Member struct {
	Name string `yaml:"name" json:"name"`
	Role string `yaml:"role" json:"role"`
}

type Site struct {
	Services     []Service     `yaml:"services" json:"services"`
	Gallery      []GalleryItem `yaml:"gallery" json:"gallery"`
	Testimonials []Testimonial `yaml:"testimonials" json:"testimonials"`
	Team         []Member      `yaml:"team" json:"team"`
}

// Load decodes the embedded site data.
func Load() (*Site, error) {
	return Parse(raw)
}

func Parse(b []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	seen := map[string]bool{}
	for _, g := range s.Gallery {
		if g.ID == "" || g.Object == "" {
			return nil, fmt.Errorf("gallery item %q needs id and object", g.ID)
		}
		if seen[g.ID] {
			return nil, fmt.Errorf("duplicate gallery id %q", g.ID)
		}
		seen[g.ID] = true
	}
	return &s, nil
}

func (s *Site) GalleryItem(id string) (GalleryItem, bool) {
	for _, g := range s.Gallery {
		if g.ID == id {
			return g, true
		}
	}
	return GalleryItem{}, false
}

// ServiceNames lists the bookable service labels.
func (s *Site) ServiceNames() []string {
	out := make([]string, 0, len(s.Services))
	for _, svc := range s.Services {
		out = append(out, svc.Name)
	}
	return out
}
