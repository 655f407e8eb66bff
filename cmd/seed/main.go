// Наполняет базу демонстрационными данными: страницы, объявления и
// обращения, включая секретные. Используется для локальной разработки.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"corpsite-back/internal/config"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
	"corpsite-back/pkg/cryptobox"
	"corpsite-back/pkg/logger"
	"corpsite-back/pkg/postgres"
)

const (
	pagesPerKind   = 3
	noticeCount    = 10
	inquiryCount   = 15
	secretPassword = "demo-password"
)

const seedTimeout = 30 * time.Second

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	cfg := config.MustLoadConfig()

	log := logger.MustSetupLogger(&logger.Config{Level: cfg.Level, FormatJSON: cfg.FormatJSON})
	defer log.Sync() // nolint: errcheck

	db, err := postgres.New(&postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	box, err := cryptobox.New([]byte(cfg.Crypto.InquiryKey), log)
	if err != nil {
		log.Fatal("Failed to initialize cryptobox", zap.Error(err))
	}

	if err := seed(ctx, log, db, box); err != nil {
		log.Fatal("Seed failed", zap.Error(err))
	}

	log.Info("Seed finished",
		zap.Int("pages", pagesPerKind*len(model.PageKinds)),
		zap.Int("notices", noticeCount),
		zap.Int("inquiries", inquiryCount),
	)
}

func seed(ctx context.Context, log *zap.Logger, db postgres.Postgres, box *cryptobox.CryptoBox) error {
	pageRepo := repository.NewPageRepository(db.Pool())
	noticeRepo := repository.NewNoticeRepository(db.Pool())
	inquiryRepo := repository.NewInquiryRepository(db.Pool())

	for _, kind := range model.PageKinds {
		for i := 0; i < pagesPerKind; i++ {
			if err := pageRepo.Create(ctx, nil, fakePage(kind, i)); err != nil {
				return fmt.Errorf("failed to seed page: %w", err)
			}
		}
	}

	log.Debug("Pages seeded")

	for i := 0; i < noticeCount; i++ {
		if err := noticeRepo.Create(ctx, nil, fakeNotice(i)); err != nil {
			return fmt.Errorf("failed to seed notice: %w", err)
		}
	}

	log.Debug("Notices seeded")

	for i := 0; i < inquiryCount; i++ {
		inq, err := fakeInquiry(box, i)
		if err != nil {
			return err
		}

		if err := inquiryRepo.Create(ctx, nil, inq); err != nil {
			return fmt.Errorf("failed to seed inquiry: %w", err)
		}
	}

	log.Debug("Inquiries seeded")

	return nil
}

func fakePage(kind string, i int) *model.Page {
	return &model.Page{
		ID:           uuid.New(),
		Kind:         kind,
		Title:        gofakeit.ProductName(),
		Body:         gofakeit.LoremIpsumParagraph(2, 4, 12, " "),
		MediaURL:     gofakeit.URL(),
		DisplayOrder: i,
		Published:    true,
	}
}

func fakeNotice(i int) *model.Notice {
	return &model.Notice{
		ID:     uuid.New(),
		Title:  gofakeit.LoremIpsumSentence(5),
		Body:   gofakeit.LoremIpsumParagraph(1, 3, 10, " "),
		Pinned: i == 0,
	}
}

// Каждое третье обращение - секретное, с зашифрованным email.
func fakeInquiry(box *cryptobox.CryptoBox, i int) (*model.Inquiry, error) {
	inq := &model.Inquiry{
		ID:      uuid.New(),
		Title:   gofakeit.Question(),
		Content: gofakeit.LoremIpsumParagraph(1, 2, 10, " "),
		Author:  gofakeit.Name(),
	}

	if i%3 == 0 {
		ciphertext, err := box.Encrypt(gofakeit.Email())
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt seed email: %w", err)
		}

		hash, err := box.HashPassword(secretPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash seed password: %w", err)
		}

		inq.IsSecret = true
		inq.EmailCiphertext = ciphertext
		inq.PasswordHash = hash
	}

	return inq, nil
}
