package archive

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/chronicle-dev/chronicle/internal/config"
)

// Generator renders the archive index for one blog repository. BaseDir must
// be the physical repository root; every config-relative path is joined with
// it, never with the working directory or the invocation path.
type Generator struct {
	BaseDir string
	Config  *config.Config

	// Now is the clock used for the updated-at stamp. Overridable in tests.
	Now func() time.Time
}

// templateData is what the archive template sees.
type templateData struct {
	Recents   string
	Body      string
	UpdatedAt string
}

// New returns a Generator rooted at baseDir.
func New(baseDir string, cfg *config.Config) *Generator {
	return &Generator{
		BaseDir: baseDir,
		Config:  cfg,
		Now:     time.Now,
	}
}

// ArchivePath returns the absolute path of the generated archive file.
func (g *Generator) ArchivePath() string {
	return filepath.Join(g.BaseDir, g.Config.ArchiveFile)
}

// Render scans all sections and produces the full archive document.
func (g *Generator) Render() (string, error) {
	sections, all, err := scanSections(g.BaseDir, g.Config.Sections)
	if err != nil {
		return "", err
	}

	var bodies []string
	for _, sp := range sections {
		bodies = append(bodies, renderSection(sp))
	}

	recents := all
	if len(recents) > g.Config.Recents {
		recents = recents[:g.Config.Recents]
	}
	var recentLines []string
	for _, post := range recents {
		recentLines = append(recentLines, renderItem(post))
	}

	templatePath := filepath.Join(g.BaseDir, g.Config.TemplateFile)
	tpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("loading template %s: %w", templatePath, err)
	}

	var buf bytes.Buffer
	err = tpl.Execute(&buf, templateData{
		Recents:   strings.Join(recentLines, "\n"),
		Body:      strings.Join(bodies, "\n"),
		UpdatedAt: g.Now().Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		return "", fmt.Errorf("rendering template %s: %w", templatePath, err)
	}
	return buf.String(), nil
}

// Run renders the archive and writes it to the configured file.
func (g *Generator) Run() error {
	content, err := g.Render()
	if err != nil {
		return err
	}

	out := g.ArchivePath()
	if err := os.WriteFile(out, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing archive %s: %w", out, err)
	}
	return nil
}

// Stale reports whether the on-disk archive differs from a fresh render.
// The volatile updated-at stamp is excluded from the comparison, otherwise
// every run would look stale.
func (g *Generator) Stale() (bool, error) {
	fresh, err := g.Render()
	if err != nil {
		return false, err
	}

	existing, err := os.ReadFile(g.ArchivePath())
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("reading archive %s: %w", g.ArchivePath(), err)
	}

	return stripStamp(string(existing)) != stripStamp(fresh), nil
}

// renderSection produces the markdown block for one section: heading,
// optional description quote, then one list item per post.
func renderSection(sp SectionPosts) string {
	lines := []string{"## " + sp.Section.Title}
	if sp.Section.Description != "" {
		lines = append(lines, "> "+sp.Section.Description+"\n")
	}
	for _, post := range sp.Posts {
		lines = append(lines, renderItem(post))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// renderItem produces a single archive list line.
func renderItem(post Post) string {
	if post.PlainDate || post.Date == "" {
		return fmt.Sprintf("- [%s](%s)", post.Title, post.Link)
	}
	return fmt.Sprintf("- [%s](%s) <small>(%s)</small>", post.Title, post.Link, post.Date)
}

// stripStamp drops the stamp line the default template emits ("Updated: ...")
// so content comparison ignores the generation time.
func stripStamp(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, "Updated:") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
