package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colorkit/coloring-book-api/internal/config"
	"github.com/colorkit/coloring-book-api/internal/domain"
	"github.com/colorkit/coloring-book-api/internal/imagegen"
	"github.com/colorkit/coloring-book-api/internal/llm"
	"github.com/colorkit/coloring-book-api/internal/prompt"
	"github.com/colorkit/coloring-book-api/internal/repository/redis"
)

// GenerationService runs the coloring-page pipeline: content screen →
// classify → refine via a chat provider → generate with a one-shot model
// fallback. Refinement always completes before generation starts because its
// output is the generation input.
type GenerationService struct {
	llmRouter   *llm.Router
	backend     imagegen.Backend
	promptCache *redis.PromptCache // optional
	imageCfg    config.ImageConfig
	llmTimeout  time.Duration
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	llmRouter *llm.Router,
	backend imagegen.Backend,
	promptCache *redis.PromptCache,
	imageCfg config.ImageConfig,
	llmTimeout time.Duration,
) *GenerationService {
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	return &GenerationService{
		llmRouter:   llmRouter,
		backend:     backend,
		promptCache: promptCache,
		imageCfg:    imageCfg,
		llmTimeout:  llmTimeout,
	}
}

// Refine rewrites a raw prompt into a detailed coloring-page instruction.
// The family-friendly screen short-circuits before any upstream call.
func (s *GenerationService) Refine(ctx context.Context, req domain.GenerationRequest) (*domain.RefinedPrompt, error) {
	if ok, term := prompt.CheckFamilyFriendly(req.Prompt); !ok {
		log.Warn().Str("term", term).Msg("prompt failed family-friendly screen")
		return nil, domain.ContentPolicyError("prompt contains content unsuitable for a coloring book")
	}

	category, keywords := prompt.Classify(req.Prompt)

	var cacheKey string
	if s.promptCache != nil {
		cacheKey = s.promptCache.Key(req.Prompt, req.Customizations)
		if cached, err := s.promptCache.Get(ctx, cacheKey); err == nil && cached != nil {
			return cached, nil
		}
	}

	provider, err := s.llmRouter.GetProvider("")
	if err != nil {
		return nil, domain.UpstreamError("no chat provider available", err)
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	resp, err := provider.Complete(llmCtx, llm.Request{
		System:      prompt.RefinerSystemMessage,
		Instruction: prompt.BuildRefineInstruction(req.Prompt, category, req.Customizations),
		Temperature: 0.7,
		MaxTokens:   600,
	}, "")
	if err != nil {
		if _, ok := domain.AsError(err); ok {
			return nil, err
		}
		return nil, domain.UpstreamError("prompt refinement failed", err)
	}

	refinedText := prompt.CleanCompletion(resp.Text)
	if refinedText == "" {
		return nil, domain.UpstreamError("refiner returned an empty prompt", nil)
	}

	refined := &domain.RefinedPrompt{
		OriginalPrompt: req.Prompt,
		RefinedPrompt:  refinedText,
		Category:       category,
		Keywords:       keywords,
	}

	if s.promptCache != nil {
		if err := s.promptCache.Set(ctx, cacheKey, refined); err != nil {
			log.Warn().Err(err).Msg("failed to cache refined prompt")
		}
	}

	return refined, nil
}

// Generate runs the full pipeline and returns the generated image reference.
// The primary model tier is tried first; any non-policy failure gets exactly
// one retry against the fallback tier. Content-policy rejections from either
// tier propagate immediately.
func (s *GenerationService) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	refined, err := s.Refine(ctx, req)
	if err != nil {
		return nil, err
	}

	imgReq := imagegen.Request{
		Prompt:  refined.RefinedPrompt,
		Size:    s.imageCfg.Size,
		Quality: s.imageCfg.Quality,
		Style:   s.imageCfg.Style,
	}

	result, err := s.backend.Generate(ctx, imgReq, s.backend.PrimaryModel())
	if err != nil {
		if isContentPolicy(err) {
			return nil, err
		}

		log.Warn().
			Err(err).
			Str("primary_model", s.backend.PrimaryModel()).
			Str("fallback_model", s.backend.FallbackModel()).
			Msg("primary image tier failed, trying fallback")

		result, err = s.backend.Generate(ctx, imgReq, s.backend.FallbackModel())
		if err != nil {
			if _, ok := domain.AsError(err); ok {
				return nil, err
			}
			return nil, domain.UpstreamError("image generation failed on both tiers", err)
		}
	}

	return &domain.GenerationResult{
		ImageURL:       result.ImageURL,
		OriginalPrompt: req.Prompt,
		RefinedPrompt:  refined.RefinedPrompt,
		RevisedPrompt:  result.RevisedPrompt,
		Metadata: domain.ImageMetadata{
			Model:      result.Model,
			Size:       s.imageCfg.Size,
			Quality:    s.imageCfg.Quality,
			Style:      s.imageCfg.Style,
			Category:   refined.Category,
			Complexity: req.Customizations.Complexity,
			AgeGroup:   req.Customizations.AgeGroup,
			Timestamp:  time.Now().Unix(),
		},
	}, nil
}

func isContentPolicy(err error) bool {
	de, ok := domain.AsError(err)
	return ok && de.Code == domain.ErrCodeContentPolicy
}
