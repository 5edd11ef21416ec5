package service

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	bartypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"github.com/cloudservices/kbot/config"
)

// Retriever forwards a query to the managed knowledge-base service and
// returns whatever text it generates. Its ranking is opaque to us.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (string, error)
}

// BedrockRetriever calls the Bedrock knowledge base retrieve-and-generate API.
type BedrockRetriever struct {
	client *bedrockagentruntime.Client
	cfg    config.RetrievalConfig
}

func NewBedrockRetriever(awsCfg aws.Config, cfg config.RetrievalConfig) *BedrockRetriever {
	return &BedrockRetriever{
		client: bedrockagentruntime.NewFromConfig(awsCfg),
		cfg:    cfg,
	}
}

func (r *BedrockRetriever) Retrieve(ctx context.Context, query string) (string, error) {
	out, err := r.client.RetrieveAndGenerate(ctx, &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &bartypes.RetrieveAndGenerateInput{
			Text: aws.String(query),
		},
		RetrieveAndGenerateConfiguration: &bartypes.RetrieveAndGenerateConfiguration{
			Type: bartypes.RetrieveAndGenerateTypeKnowledgeBase,
			KnowledgeBaseConfiguration: &bartypes.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(r.cfg.KnowledgeBaseID),
				ModelArn:        aws.String(r.cfg.ModelARN),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if out.Output == nil {
		return "", nil
	}
	return aws.ToString(out.Output.Text), nil
}
