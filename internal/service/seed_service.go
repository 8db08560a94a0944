package service

import (
	"context"
	"fmt"
	"llm_catalog/internal/dao"
	"llm_catalog/internal/entity"

	"gorm.io/gorm"
)

type seedModel struct {
	name          string
	provider      string
	modelType     string
	description   string
	contextWindow int
}

var seedProviders = []entity.Provider{
	{Name: "OpenAI", Description: strPtr("OpenAI API Platform"), WebsiteURL: strPtr("https://platform.openai.com")},
	{Name: "Google Cloud", Description: strPtr("Google Cloud Vertex AI"), WebsiteURL: strPtr("https://cloud.google.com/vertex-ai")},
	{Name: "Anthropic", Description: strPtr("Anthropic Claude API"), WebsiteURL: strPtr("https://www.anthropic.com")},
	{Name: "AWS", Description: strPtr("Amazon Bedrock"), WebsiteURL: strPtr("https://aws.amazon.com/bedrock/")},
	{Name: "Microsoft", Description: strPtr("Azure OpenAI Service"), WebsiteURL: strPtr("https://azure.microsoft.com/en-us/products/ai-services/openai-service/")},
}

var seedModels = []seedModel{
	{"GPT-4o", "OpenAI", "multimodal", "GPT-4 Omni model", 128000},
	{"GPT-4o-mini", "OpenAI", "multimodal", "GPT-4 Omni mini model", 128000},
	{"Claude 3.5 Sonnet", "Anthropic", "text", "Claude 3.5 Sonnet model", 200000},
	{"Claude 3.5 Haiku", "Anthropic", "text", "Claude 3.5 Haiku model", 200000},
	{"Gemini 1.5 Pro", "Google Cloud", "multimodal", "Gemini 1.5 Pro model", 2000000},
	{"Gemini 1.5 Flash", "Google Cloud", "multimodal", "Gemini 1.5 Flash model", 1000000},
}

func strPtr(s string) *string { return &s }

type SeedService struct {
	providerDAO *dao.ProviderDAO
	modelDAO    *dao.ModelDAO
}

func NewSeedService(dbConn *gorm.DB) *SeedService {
	return &SeedService{
		providerDAO: dao.NewProviderDAO(dbConn),
		modelDAO:    dao.NewModelDAO(dbConn),
	}
}

// Seed 只在 providers 表为空时写入示例数据，返回是否写入
func (s *SeedService) Seed(ctx context.Context) (bool, error) {
	logger := serviceLogger()

	count, err := s.providerDAO.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		logger.Info("data already exists, skipping seed", "providers", count)
		return false, nil
	}

	providerIDs := make(map[string]uint, len(seedProviders))
	for _, p := range seedProviders {
		provider := p
		if err := s.providerDAO.Save(ctx, &provider); err != nil {
			return false, fmt.Errorf("seed provider %s: %w", provider.Name, err)
		}
		providerIDs[provider.Name] = provider.ID
	}

	for _, m := range seedModels {
		contextWindow := m.contextWindow
		model := &entity.Model{
			Name:          m.name,
			ProviderID:    providerIDs[m.provider],
			ModelType:     strPtr(m.modelType),
			Description:   strPtr(m.description),
			ContextWindow: &contextWindow,
		}
		if err := s.modelDAO.Save(ctx, model); err != nil {
			return false, fmt.Errorf("seed model %s: %w", m.name, err)
		}
	}

	logger.Info("sample data seeded", "providers", len(seedProviders), "models", len(seedModels))
	return true, nil
}
