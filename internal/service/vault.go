package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/batch26/keepsake/internal/latency"
	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/repository"
	"github.com/batch26/keepsake/internal/storage"
	"github.com/batch26/keepsake/internal/validation"
)

var ErrSignInRequired = errors.New("sign in to upload memories")

// Upload is a file offered to the vault.
type Upload struct {
	Filename string
	// ContentType is what the client declared; it decides image versus video.
	ContentType string
	Size        int64
	Body        io.ReadSeeker
	Caption     string
}

type VaultService struct {
	media         repository.MediaRepository
	storage       storage.Storage
	latency       latency.Policy
	maxUploadSize int64
	entropy       entropy
}

func NewVaultService(media repository.MediaRepository, storage storage.Storage, policy latency.Policy, maxUploadSize int64) *VaultService {
	return &VaultService{
		media:         media,
		storage:       storage,
		latency:       policy,
		maxUploadSize: maxUploadSize,
		entropy:       defaultEntropy(),
	}
}

func (s *VaultService) MaxUploadSize() int64 {
	return s.maxUploadSize
}

// Media returns the vault, newest first.
func (s *VaultService) Media(ctx context.Context) ([]*model.VaultItem, error) {
	err := latency.Wait(ctx, s.latency, latency.OpListMedia)
	if err != nil {
		return nil, err
	}

	items, err := s.media.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return items, nil
}

// Upload stores the file and prepends it to the vault as a square tile
// tagged "User Upload".
func (s *VaultService) Upload(ctx context.Context, in Upload, user *model.User) (*model.VaultItem, error) {
	if user == nil {
		return nil, ErrSignInRequired
	}

	caption := strings.TrimSpace(in.Caption)
	err := validation.ValidateCaption(caption)
	if err != nil {
		return nil, err
	}

	contentType, err := validation.ValidateDeclaredFile(in.Filename, in.Size, in.Body, in.ContentType, validation.MediaConstraints(s.maxUploadSize)...)
	if err != nil {
		return nil, err
	}
	declared := in.ContentType
	if declared == "" {
		declared = contentType
	}

	err = latency.Wait(ctx, s.latency, latency.OpUploadMedia)
	if err != nil {
		return nil, err
	}

	kind := model.MediaTypeImage
	if strings.HasPrefix(declared, "video") {
		kind = model.MediaTypeVideo
	}

	id := uuid.NewString()
	storagePath := path.Join("vault", id+strings.ToLower(filepath.Ext(in.Filename)))

	err = s.storage.Save(ctx, storagePath, in.Body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	item := &model.VaultItem{
		ID:        id,
		Type:      kind,
		Src:       s.storage.URL(storagePath),
		Alt:       caption,
		Date:      s.entropy.today(),
		Caption:   caption,
		Tags:      model.StringList{model.TagUserUpload},
		Aspect:    model.AspectSquare,
		CreatedAt: s.entropy.now(),
	}

	err = s.media.Create(ctx, item)
	if err != nil {
		// If the record fails, try to cleanup the uploaded file
		delErr := s.storage.Delete(context.WithoutCancel(ctx), storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create media record: %w", err)
	}

	slog.Info("media uploaded", "id", item.ID, "type", item.Type, "user_id", user.ID)
	return item, nil
}
