package service

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/batch26/keepsake/internal/markdown"
	"github.com/batch26/keepsake/internal/model"
)

const timelineCacheKey = "timeline"

type timelineMeta struct {
	Year    string `yaml:"year"`
	Title   string `yaml:"title"`
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
	Align   string `yaml:"align"`
	Order   int    `yaml:"order"`
}

// TimelineService reads class memories from timeline/*.md in content.
type TimelineService struct {
	parser  *markdown.Parser
	content fs.FS
	cache   *cache.Cache
}

// NewTimelineService caches parsed events for ttl. A zero ttl re-reads the
// files on every call, which suits editing content in development.
func NewTimelineService(content fs.FS, ttl time.Duration) *TimelineService {
	s := &TimelineService{
		parser:  markdown.NewParser(),
		content: content,
	}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// Events returns the timeline ordered by the order field, then year.
func (s *TimelineService) Events() ([]*model.MemoryEvent, error) {
	if s.cache != nil {
		cached, ok := s.cache.Get(timelineCacheKey)
		if ok {
			return cached.([]*model.MemoryEvent), nil
		}
	}

	files, err := fs.Glob(s.content, "timeline/*.md")
	if err != nil {
		return nil, err
	}

	events := make([]*model.MemoryEvent, 0, len(files))
	for _, file := range files {
		event, err := s.parse(file)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Order != events[j].Order {
			return events[i].Order < events[j].Order
		}
		return events[i].Year < events[j].Year
	})

	if s.cache != nil {
		s.cache.SetDefault(timelineCacheKey, events)
	}
	return events, nil
}

func (s *TimelineService) parse(file string) (*model.MemoryEvent, error) {
	source, err := fs.ReadFile(s.content, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	var meta timelineMeta
	html, err := s.parser.Parse(source, &meta)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	align := meta.Align
	switch align {
	case model.AlignLeft, model.AlignRight, model.AlignCenter:
	default:
		align = model.AlignLeft
	}

	return &model.MemoryEvent{
		Slug:        strings.TrimSuffix(path.Base(file), ".md"),
		Year:        meta.Year,
		Title:       meta.Title,
		HTMLContent: string(html),
		Image:       meta.Image,
		Caption:     meta.Caption,
		Align:       align,
		Order:       meta.Order,
	}, nil
}
