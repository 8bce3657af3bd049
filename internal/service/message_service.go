package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apparel-site-api/internal/media"
	"github.com/apparel-site-api/internal/models"
	"github.com/apparel-site-api/internal/repository"
	"github.com/apparel-site-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultSenderName = "Website Visitor"

// messageService is the concrete implementation of MessageService
type messageService struct {
	repo  repository.MessageRepository
	store media.Store
	log   zerolog.Logger
}

func newMessageService(repo repository.MessageRepository, store media.Store, log zerolog.Logger) *messageService {
	return &messageService{
		repo:  repo,
		store: store,
		log:   log.With().Str("service", "message").Logger(),
	}
}

// Submit validates the form before uploading the optional attachment, so a
// rejected submission never leaves a file behind.
func (s *messageService) Submit(ctx context.Context, input *models.MessageInput, file *models.FileUpload) (*models.Message, error) {
	now := time.Now().UTC()
	msg := &models.Message{
		ID:            uuid.New().String(),
		Company:       strings.TrimSpace(input.Company),
		Name:          strings.TrimSpace(input.Name),
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		Email:         strings.TrimSpace(input.Email),
		Subject:       strings.TrimSpace(input.Subject),
		Message:       strings.TrimSpace(input.Message),
		Fabric:        input.Fabric,
		Sizes:         input.Sizes,
		Quantity:      input.Quantity,
		Deadline:      input.Deadline,
		Address:       input.Address,
		Budget:        input.Budget,
		Status:        models.MessageStatusNew,
		SubmittedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if msg.Name == "" {
		msg.Name = msg.Company
	}
	if msg.Name == "" {
		msg.Name = defaultSenderName
	}
	if msg.Subject == "" {
		from := msg.Company
		if from == "" {
			from = "website visitor"
		}
		msg.Subject = "Contact form submission from " + from
	}

	if errs := validation.ValidateMessage(msg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	var uploaded *media.Asset
	if file != nil {
		asset, err := s.store.Upload(ctx, file.Path, media.UploadOptions{
			Folder:       media.FolderContactFiles,
			ResourceType: media.ResourceAuto,
		})
		if err != nil {
			return nil, err
		}
		uploaded = asset
		msg.FileName = file.Name
		msg.FileURL = asset.SecureURL
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		if uploaded != nil {
			if _, derr := s.store.Destroy(ctx, uploaded.PublicID, media.ResourceType(uploaded.ResourceType)); derr != nil {
				s.log.Warn().Err(derr).Str("public_id", uploaded.PublicID).Msg("Failed to remove orphaned contact file")
			}
		}
		return nil, fmt.Errorf("create message: %w", err)
	}

	s.log.Info().
		Str("message_id", msg.ID).
		Bool("has_file", msg.FileURL != "").
		Msg("Message received")

	return msg, nil
}

func (s *messageService) List(ctx context.Context, status string) ([]models.MessageView, error) {
	messages, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	views := make([]models.MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, messages[i].View())
	}
	return views, nil
}

func (s *messageService) UpdateStatus(ctx context.Context, id string, status models.MessageStatus) (*models.Message, error) {
	if !validation.IsValidMessageStatus(status) {
		return nil, invalid("status", "Invalid status value")
	}
	if !validation.IsValidUUID(id) {
		return nil, ErrNotFound
	}

	msg, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.log.Info().Str("message_id", id).Str("status", string(status)).Msg("Message status updated")
	return msg, nil
}

// Delete removes the row first; the attachment is cleaned up best-effort
func (s *messageService) Delete(ctx context.Context, id string) error {
	if !validation.IsValidUUID(id) {
		return ErrNotFound
	}

	msg, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}

	if msg.FileURL != "" {
		s.destroyAttachment(ctx, msg)
	}

	s.log.Info().Str("message_id", id).Msg("Message deleted")
	return nil
}

func (s *messageService) destroyAttachment(ctx context.Context, msg *models.Message) {
	log := s.log.With().Str("message_id", msg.ID).Str("file_url", msg.FileURL).Logger()

	publicID, rt, err := media.ContactFilePublicID(msg.FileURL, media.FolderContactFiles)
	if err != nil {
		log.Warn().Err(err).Msg("Skipping attachment cleanup")
		return
	}

	result, err := s.store.Destroy(ctx, publicID, rt)
	if err != nil {
		log.Warn().Err(err).Str("public_id", publicID).Msg("Failed to delete attachment")
		return
	}
	if result != media.ResultOK {
		log.Warn().Str("public_id", publicID).Str("result", result).Msg("Attachment was not deleted")
	}
}
