package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Printf("AWS config load failed, mail disabled: %v", err)
		return
	}
	sesClient = ses.NewFromConfig(cfg)
}

func sendEmail(to, subject, body string) error {
	if sesClient == nil {
		return fmt.Errorf("mailer not initialized")
	}
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}
	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

func SendWelcomeEmail(to, firstName string) error {
	subject := "Welcome to CalorieCam"
	body := fmt.Sprintf("Hi %s,\n\nSnap a photo of your next meal and we'll handle the rest.", firstName)
	return sendEmail(to, subject, body)
}

func SendResetEmail(to, token string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\n\nUse this in the app to set a new password.", token)
	return sendEmail(to, subject, body)
}
