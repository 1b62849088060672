package genservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgelabs/appforge/pkg/codegen"
	"github.com/forgelabs/appforge/pkg/logger"
	"github.com/forgelabs/appforge/pkg/uid"
	"github.com/forgelabs/appforge/pkg/validator"
	"github.com/forgelabs/appforge/storage/userrepo"
)

const systemPrompt = "You are an expert full-stack developer. " +
	"Generate production-ready, well-structured React code with TypeScript and Tailwind CSS."

type DefaultServiceConfig struct {
	Client   codegen.Client `validate:"required"`
	UserRepo userrepo.Repo  `validate:"required"`
	UID      uid.UID        `validate:"required"`
}

type DefaultService struct {
	Config DefaultServiceConfig
}

var _ Service = (*DefaultService)(nil)

func New(dep DefaultServiceConfig) (*DefaultService, error) {
	if err := validator.Validate(dep); err != nil {
		return nil, err
	}

	return &DefaultService{
		Config: dep,
	}, nil
}

func (d *DefaultService) Generate(ctx context.Context, ownerID string, input InputGenerate) (out OutGenerate, err error) {
	err = validator.Validate(input)
	if err != nil {
		err = fmt.Errorf("validation error, missing required field: %w", err)
		return
	}

	user, err := d.Config.UserRepo.GetByID(ctx, ownerID)
	if err != nil {
		return
	}

	if user.AIGenerationsUsed >= user.AIGenerationsLimit {
		err = ErrQuotaExceeded
		return
	}

	// task id ties provider call logs to one generation attempt
	taskID, err := d.Config.UID.NextID()
	if err != nil {
		err = fmt.Errorf("cannot generate task id: %w", err)
		return
	}

	logger.Debug(ctx, "calling code generation provider",
		logger.KV("task_id", taskID),
		logger.KV("owner_id", ownerID),
	)

	completion, err := d.Config.Client.Complete(ctx, codegen.CompletionInput{
		SystemPrompt: systemPrompt,
		UserPrompt:   BuildPrompt(input.AppSpec, input.CustomPrompt),
	})
	if err != nil {
		return
	}

	updated, err := d.Config.UserRepo.IncGenerationsUsed(ctx, ownerID)
	if err != nil {
		// The artifact is already produced; count the quota as spent next time
		// instead of failing the whole call.
		logger.Error(ctx, "cannot increment generation counter", logger.KV("error", err))
		updated = user
		updated.AIGenerationsUsed++
		err = nil
	}

	out = OutGenerate{
		GeneratedCode:        completion.Text,
		RemainingGenerations: updated.AIGenerationsLimit - updated.AIGenerationsUsed,
	}
	return
}

// BuildPrompt renders the generation prompt from the app specification.
func BuildPrompt(spec AppSpec, customPrompt string) string {
	features := make([]string, 0, len(spec.Features))
	for _, f := range spec.Features {
		features = append(features, "- "+f)
	}

	entities := make([]string, 0, len(spec.Entities))
	for _, e := range spec.Entities {
		entities = append(entities, fmt.Sprintf("- %s: %s", e.Name, strings.Join(e.Fields, ", ")))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a complete %s application with the following specifications:\n\n",
		strings.ToUpper(spec.Framework))
	fmt.Fprintf(&b, "**App Name:** %s\n", spec.Name)
	fmt.Fprintf(&b, "**Description:** %s\n", spec.Description)
	fmt.Fprintf(&b, "**Target Audience:** %s\n\n", spec.TargetAudience)
	fmt.Fprintf(&b, "**Features:**\n%s\n\n", strings.Join(features, "\n"))
	fmt.Fprintf(&b, "**Data Entities:**\n%s\n\n", strings.Join(entities, "\n"))
	fmt.Fprintf(&b, "**Framework:** %s\n", spec.Framework)
	fmt.Fprintf(&b, "**Styling:** %s\n\n", spec.Styling)

	b.WriteString("Requirements:\n")
	b.WriteString("1. Use TypeScript for type safety\n")
	fmt.Fprintf(&b, "2. Use %s for styling\n", spec.Styling)
	b.WriteString("3. Create reusable, well-organized components\n")
	b.WriteString("4. Include proper state management\n")
	b.WriteString("5. Add error handling and loading states\n")
	b.WriteString("6. Make it responsive and accessible\n")
	b.WriteString("7. Include comments for complex logic\n")
	b.WriteString("8. Follow best practices and clean code principles\n\n")
	b.WriteString("Generate the complete App.tsx file with all necessary components inline.\n")

	if customPrompt != "" {
		fmt.Fprintf(&b, "\n**Additional Requirements:**\n%s\n", customPrompt)
	}

	return b.String()
}
