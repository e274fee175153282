package buildercmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/internal/builder"
	"github.com/goliatone/go-storefront/internal/commands"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/pages"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	"github.com/google/uuid"
)

// ErrUnknownOp is returned for an edit whose operation is not recognised.
var ErrUnknownOp = errors.New("builder command: unknown edit operation")

// Text codes for failures the edit handler classifies itself.
const (
	CodeEditRejected     = "STOREFRONT_EDIT_REJECTED"
	CodeBusinessNotFound = "STOREFRONT_BUSINESS_NOT_FOUND"
)

// SessionOpener is the slice of the builder service the edit handler needs.
type SessionOpener interface {
	Open(ctx context.Context, businessID uuid.UUID, pageType domain.PageType, notifier pages.Notifier) (*builder.Session, error)
}

// ApplyEditsHandler opens a session, replays the edits and saves once. Any
// failing edit aborts the batch before anything is written.
type ApplyEditsHandler struct {
	inner *commands.Handler[ApplyEditsCommand]
}

// NewApplyEditsHandler constructs the handler around the builder service.
func NewApplyEditsHandler(opener SessionOpener, logger interfaces.Logger, opts ...commands.HandlerOption[ApplyEditsCommand]) *ApplyEditsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ApplyEditsCommand) error {
		session, err := opener.Open(ctx, msg.BusinessID, domain.PageType(msg.PageType), nil)
		if err != nil {
			if errors.Is(err, profiles.ErrNotFound) {
				return goerrors.Wrap(err, goerrors.CategoryCommand, "business not found").
					WithTextCode(CodeBusinessNotFound)
			}
			return err
		}
		for i, edit := range msg.Edits {
			if err := applyEdit(session.Draft(), session.PageType(), edit); err != nil {
				return goerrors.Wrap(fmt.Errorf("edit %d (%s): %w", i, edit.Op, err), goerrors.CategoryValidation, "builder edit rejected").
					WithTextCode(CodeEditRejected)
			}
		}
		_, err = session.Save(ctx)
		return err
	}

	handlerOpts := []commands.HandlerOption[ApplyEditsCommand]{
		commands.WithLogger[ApplyEditsCommand](baseLogger),
		commands.WithOperation[ApplyEditsCommand]("builder.apply_edits"),
		commands.WithMessageFields(func(msg ApplyEditsCommand) map[string]any {
			fields := map[string]any{"edits": len(msg.Edits)}
			if msg.BusinessID != uuid.Nil {
				fields["business_id"] = msg.BusinessID
			}
			if pt := strings.TrimSpace(msg.PageType); pt != "" {
				fields["page_type"] = pt
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ApplyEditsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ApplyEditsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ApplyEditsCommand].
func (h *ApplyEditsHandler) Execute(ctx context.Context, msg ApplyEditsCommand) error {
	return h.inner.Execute(ctx, msg)
}

func applyEdit(draft *pages.Draft, pageType domain.PageType, edit Edit) error {
	switch edit.Op {
	case OpAdd:
		_, err := draft.AddBlock(pageType, edit.BlockType)
		return err
	case OpRemove:
		draft.RemoveBlock(pageType, edit.BlockID)
		return nil
	case OpUpdate:
		return draft.UpdateBlock(pageType, edit.BlockID, edit.Patch)
	case OpReorder:
		return draft.Reorder(pageType, edit.From, edit.To)
	case OpSettings:
		return draft.UpdatePageSettings(pageType, pages.SettingsPatch{
			Headline:    edit.Headline,
			Description: edit.Description,
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, edit.Op)
	}
}

// SaveSessionHandler persists an already open session.
type SaveSessionHandler struct {
	inner *commands.Handler[SaveSessionCommand]
}

// NewSaveSessionHandler constructs the save handler.
func NewSaveSessionHandler(logger interfaces.Logger, opts ...commands.HandlerOption[SaveSessionCommand]) *SaveSessionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SaveSessionCommand) error {
		_, err := msg.Session.Save(ctx)
		return err
	}

	handlerOpts := []commands.HandlerOption[SaveSessionCommand]{
		commands.WithLogger[SaveSessionCommand](baseLogger),
		commands.WithOperation[SaveSessionCommand]("builder.save"),
		commands.WithMessageFields(func(msg SaveSessionCommand) map[string]any {
			if msg.Session == nil {
				return nil
			}
			return map[string]any{"page_type": msg.Session.PageType()}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SaveSessionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveSessionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SaveSessionCommand].
func (h *SaveSessionHandler) Execute(ctx context.Context, msg SaveSessionCommand) error {
	return h.inner.Execute(ctx, msg)
}

var (
	_ command.Commander[ApplyEditsCommand]  = (*ApplyEditsHandler)(nil)
	_ command.Commander[SaveSessionCommand] = (*SaveSessionHandler)(nil)
)
