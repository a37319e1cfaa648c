package archive

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chronicle-dev/chronicle/internal/config"
)

// Post is one markdown file discovered in a section directory.
type Post struct {
	Title    string // first "# " heading, or the filename when absent
	Filename string
	Date     string // leading YYYY-MM-DD of the filename, empty if none
	Link     string // relative link used in list items, "./<dir>/<file>"

	// PlainDate suppresses the trailing date annotation: either the
	// section is dated-only or the title already is the date.
	PlainDate bool
}

// SectionPosts pairs a configured section with its discovered posts, newest
// first.
type SectionPosts struct {
	Section config.Section
	Posts   []Post
}

// scanSections reads every configured section under baseDir. Sections whose
// directory is missing or holds no markdown files are skipped, matching the
// behavior of an empty blog category.
func scanSections(baseDir string, sections []config.Section) ([]SectionPosts, []Post, error) {
	var out []SectionPosts
	var all []Post

	for _, section := range sections {
		pattern := filepath.Join(baseDir, section.Dir, "*.md")
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning %s: %w", pattern, err)
		}
		if len(files) == 0 {
			continue
		}

		// Newest first: filenames lead with the date.
		sort.Sort(sort.Reverse(sort.StringSlice(files)))

		sp := SectionPosts{Section: section}
		for _, file := range files {
			post := parsePost(file, section)
			sp.Posts = append(sp.Posts, post)
			all = append(all, post)
		}
		out = append(out, sp)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Filename > all[j].Filename
	})
	return out, all, nil
}

// parsePost extracts a post's metadata. Only the first line is read; a file
// that cannot be opened still yields an entry titled by its filename.
func parsePost(path string, section config.Section) Post {
	filename := filepath.Base(path)

	title := filename
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		if scanner.Scan() {
			first := strings.TrimSpace(scanner.Text())
			if h, ok := strings.CutPrefix(first, "# "); ok {
				title = h
			}
		}
		f.Close()
	}

	date := ""
	if len(filename) >= 10 {
		date = filename[:10]
	}

	return Post{
		Title:     title,
		Filename:  filename,
		Date:      date,
		Link:      "./" + section.Dir + "/" + filename,
		PlainDate: section.PlainDates || title == date,
	}
}
