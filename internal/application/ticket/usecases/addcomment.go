package usecases

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// AttachmentInput is a file sent inline with a comment. Data is plain base64 or a
// data URL ("data:image/png;base64,...").
type AttachmentInput struct {
	FileName    string
	ContentType string
	Data        string
}

type AddCommentCommand struct {
	Caller      *permission.Principal
	TicketID    string
	Content     string
	Attachments []AttachmentInput
}

type AddCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	updateRepo  ticket.UpdateRepository
	storage     AttachmentStorage
	txMgr       db.Transactor
	assembler   *Assembler
	settings    Settings
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	updateRepo ticket.UpdateRepository,
	storage AttachmentStorage,
	txMgr db.Transactor,
	assembler *Assembler,
	settings Settings,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		updateRepo:  updateRepo,
		storage:     storage,
		txMgr:       txMgr,
		assembler:   assembler,
		settings:    settings.withDefaults(),
		logger:      logger,
	}
}

type decodedFile struct {
	key         string
	contentType string
	data        []byte
}

// Execute uploads every attachment in parallel, then inserts the comment and its
// history entry together. Any upload failure aborts the comment and removes the
// objects already stored.
func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	t, err := loadVisibleTicket(ctx, uc.ticketRepo, uc.logger, cmd.Caller, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	uc.logger.Infow("executing add comment use case",
		"ticket_id", t.ID(),
		"user_id", cmd.Caller.UserID,
		"attachments", len(cmd.Attachments),
	)

	if strings.TrimSpace(cmd.Content) == "" {
		return nil, errors.NewValidationError("comment content cannot be empty")
	}
	if len(cmd.Content) > ticket.MaxCommentLength {
		return nil, errors.NewValidationError(fmt.Sprintf("comment exceeds maximum length of %d characters", ticket.MaxCommentLength))
	}

	files, err := uc.decode(t.ID(), cmd.Attachments)
	if err != nil {
		return nil, err
	}

	urls, err := uc.upload(ctx, files)
	if err != nil {
		return nil, err
	}

	comment, err := ticket.NewComment(t.ID(), cmd.Caller, cmd.Content, urls)
	if err != nil {
		uc.cleanup(files)
		return nil, errors.NewValidationError(err.Error())
	}
	if err := comment.SetID(id.NewUUID()); err != nil {
		uc.cleanup(files)
		return nil, errors.NewInternalError("failed to add comment")
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.Create(txCtx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		msg := fmt.Sprintf("%s added a comment", displayName(cmd.Caller))
		return recordUpdate(txCtx, uc.updateRepo, t.ID(), callerID(cmd.Caller), vo.UpdateKindComment, msg)
	})
	if err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", t.ID(), "error", err)
		uc.cleanup(files)
		return nil, errors.NewInternalError("failed to add comment")
	}

	uc.logger.Infow("comment added successfully", "ticket_id", t.ID(), "comment_id", comment.ID())
	return uc.assembler.Comment(comment), nil
}

func (uc *AddCommentUseCase) decode(ticketID string, inputs []AttachmentInput) ([]decodedFile, error) {
	if len(inputs) > uc.settings.MaxAttachments {
		return nil, errors.NewValidationError(fmt.Sprintf("at most %d attachments are allowed per comment", uc.settings.MaxAttachments))
	}

	files := make([]decodedFile, 0, len(inputs))
	for i, in := range inputs {
		data, contentType, err := decodeAttachment(in)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("attachment %d could not be decoded", i+1), err.Error())
		}
		if len(data) == 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("attachment %d is empty", i+1))
		}
		if int64(len(data)) > uc.settings.MaxAttachmentBytes {
			return nil, errors.NewValidationError(fmt.Sprintf("attachment %d exceeds the %d byte limit", i+1, uc.settings.MaxAttachmentBytes))
		}
		files = append(files, decodedFile{
			key:         attachmentKey(ticketID, in.FileName, contentType),
			contentType: contentType,
			data:        data,
		})
	}
	return files, nil
}

func (uc *AddCommentUseCase) upload(ctx context.Context, files []decodedFile) ([]string, error) {
	urls := make([]string, len(files))
	if len(files) == 0 {
		return urls, nil
	}

	var (
		mu       sync.Mutex
		uploaded []decodedFile
	)
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			url, err := uc.storage.Upload(gctx, f.key, f.data, f.contentType)
			if err != nil {
				return fmt.Errorf("upload %s: %w", f.key, err)
			}
			urls[i] = url
			mu.Lock()
			uploaded = append(uploaded, f)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Errorw("attachment upload failed", "error", err, "uploaded", len(uploaded), "total", len(files))
		uc.cleanup(uploaded)
		return nil, errors.NewInternalError("failed to upload attachments")
	}
	return urls, nil
}

// cleanup deletes stored objects on a best-effort basis.
func (uc *AddCommentUseCase) cleanup(files []decodedFile) {
	for _, f := range files {
		if err := uc.storage.Delete(context.Background(), f.key); err != nil {
			uc.logger.Warnw("failed to remove orphaned attachment", "key", f.key, "error", err)
		}
	}
}

func decodeAttachment(in AttachmentInput) ([]byte, string, error) {
	payload := strings.TrimSpace(in.Data)
	contentType := in.ContentType

	if strings.HasPrefix(payload, "data:") {
		header, body, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return nil, "", fmt.Errorf("data URL must be base64 encoded")
		}
		if mt := strings.TrimSuffix(meta, ";base64"); mt != "" && contentType == "" {
			contentType = mt
		}
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// attachmentKey builds tickets/<ticketId>/comments/<uuid><ext>.
func attachmentKey(ticketID, fileName, contentType string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		mediaType, _, _ := mime.ParseMediaType(contentType)
		if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	return fmt.Sprintf("%s/%s/comments/%s%s", constants.AttachmentKeyPrefix, ticketID, id.NewUUID(), ext)
}
