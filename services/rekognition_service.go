package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MrazzKa/CalorieCam-sub001/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionService is the label-detection fallback extractor, used
// when the LLM vision call is down. Labels carry no portion estimate,
// so every component gets the 100g default.
type RekognitionService struct {
	client *rekognition.Client
}

const rekognitionDefaultPortionGrams = 100

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

func (r *RekognitionService) ExtractComponents(ctx context.Context, imageURL string) ([]FoodComponent, error) {
	if !strings.HasPrefix(imageURL, "data:image") {
		return nil, fmt.Errorf("rekognition extractor needs inline image data")
	}
	_, data, err := utils.DecodeDataURI(imageURL)
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(componentConfidenceFloor * 100),
	})
	if err != nil {
		return nil, err
	}

	components := make([]FoodComponent, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name == nil || !isFoodLabel(l) {
			continue
		}
		conf := float64(aws.ToFloat32(l.Confidence)) / 100
		if conf < componentConfidenceFloor {
			continue
		}
		components = append(components, FoodComponent{
			Name:                  strings.ToLower(aws.ToString(l.Name)),
			EstimatedPortionGrams: rekognitionDefaultPortionGrams,
			Confidence:            conf,
		})
	}
	return components, nil
}

// isFoodLabel keeps only labels rooted in Rekognition's food taxonomy.
func isFoodLabel(l types.Label) bool {
	if len(l.Parents) == 0 {
		return true
	}
	for _, p := range l.Parents {
		name := strings.ToLower(aws.ToString(p.Name))
		if strings.Contains(name, "food") || strings.Contains(name, "beverage") || strings.Contains(name, "produce") {
			return true
		}
	}
	return false
}
