package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/batch26/keepsake/internal/latency"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/repository"
	"github.com/batch26/keepsake/internal/validation"
)

type WallService struct {
	messages repository.MessageRepository
	latency  latency.Policy
	entropy  entropy
}

func NewWallService(messages repository.MessageRepository, policy latency.Policy) *WallService {
	return &WallService{
		messages: messages,
		latency:  policy,
		entropy:  defaultEntropy(),
	}
}

// Messages returns the wall, newest first.
func (s *WallService) Messages(ctx context.Context) ([]*model.WallMessage, error) {
	err := latency.Wait(ctx, s.latency, latency.OpListMessages)
	if err != nil {
		return nil, err
	}

	messages, err := s.messages.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// WallAuthor decides who signs a note: the typed name, or Anonymous when it
// is blank or anonymous is set. A note signed with the user's own name
// carries the "Student" major.
func WallAuthor(typed string, anonymous bool, user *model.User) (author, major string) {
	author = AnonymousAuthor
	if !anonymous {
		if typed = strings.TrimSpace(typed); typed != "" {
			author = typed
		}
	}
	if !anonymous && user != nil && user.Name == author {
		major = model.TagStudent
	}
	return author, major
}

// RandomStyle picks one of the four paper styles uniformly.
func (s *WallService) RandomStyle() model.PaperStyle {
	return model.PaperStyles[s.entropy.intn(len(model.PaperStyles))]
}

// Post pins a new note to the top of the wall. The note is tilted by a
// random angle in [-3, 3) degrees and its tape by one in [-5, 5).
// An empty style is replaced by a random one.
func (s *WallService) Post(ctx context.Context, in model.NewWallMessage) (*model.WallMessage, error) {
	if in.Style == "" {
		in.Style = s.RandomStyle()
	}
	err := validation.ValidateMessage(in.Text, in.Style)
	if err != nil {
		return nil, err
	}

	err = latency.Wait(ctx, s.latency, latency.OpPostMessage)
	if err != nil {
		return nil, err
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = AnonymousAuthor
	}

	message := &model.WallMessage{
		ID:           uuid.NewString(),
		Text:         strings.TrimSpace(in.Text),
		Author:       author,
		Major:        strings.TrimSpace(in.Major),
		Date:         s.entropy.today(),
		Style:        in.Style,
		Rotation:     degrees(s.entropy.float()*6 - 3),
		TapeRotation: degrees(s.entropy.float()*10 - 5),
		CreatedAt:    s.entropy.now(),
	}

	err = s.messages.Create(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}
	return message, nil
}

func degrees(v float64) string {
	return fmt.Sprintf("%.2fdeg", v)
}
