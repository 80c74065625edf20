package service

import (
	"time"

	"github.com/batch26/keepsake/internal/latency"
	"github.com/batch26/keepsake/internal/repository"
	"github.com/batch26/keepsake/internal/storage"
)

var fixedNow = time.Date(2026, time.May, 20, 15, 4, 5, 0, time.UTC)

func fixedEntropy(float float64, intn int) entropy {
	return entropy{
		now:   func() time.Time { return fixedNow },
		float: func() float64 { return float },
		intn:  func(int) int { return intn },
	}
}

func newTestEmail() *EmailService {
	return NewEmailService("", "noreply@example.com", "", "http://localhost:8090", "Batch '26", true)
}

func newTestAuth() *AuthService {
	return NewAuthService(newTestEmail(), latency.None(), "error", "fail@test.com")
}

type fixture struct {
	store    *repository.MemoryStore
	blobs    *storage.MemoryStorage
	yearbook *YearbookService
	wall     *WallService
	vault    *VaultService
}

func newFixture() *fixture {
	store := repository.NewMemoryStore()
	repos := repository.NewMemoryRepositories(store)
	blobs := storage.NewMemoryStorage()
	return &fixture{
		store:    store,
		blobs:    blobs,
		yearbook: NewYearbookService(repos.Students, repos.Signatures, latency.None()),
		wall:     NewWallService(repos.Messages, latency.None()),
		vault:    NewVaultService(repos.Media, blobs, latency.None(), 25<<20),
	}
}
