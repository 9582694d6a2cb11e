package api

import (
	"context"
	"fmt"
	"os"

	"github.com/GitShailendra/HackOnX-sub001/api/controllers"
	"github.com/GitShailendra/HackOnX-sub001/api/transport"
	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/GitShailendra/HackOnX-sub001/notify"
	"github.com/GitShailendra/HackOnX-sub001/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	// Create storage
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)
	s3Client := s3.NewFromConfig(cfg)

	applicationStorage := &storage.DynamoApplicationStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameApplications,
	}
	accountStorage := &storage.DynamoAccountStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameAccounts,
	}
	attachmentStorage := &storage.S3AttachmentStorage{
		Client:     s3Client,
		BucketName: s.config.BucketNameUploads,
	}

	tokens := &transport.TokenIssuer{
		Secret: []byte(s.config.TokenSecret),
		TTL:    s.config.TokenTTL,
	}

	mailer := &notify.SMTPSender{
		Host:     s.config.SMTPHost,
		Port:     s.config.SMTPPort,
		Username: s.config.SMTPUsername,
		Password: s.config.SMTPPassword,
		From:     s.config.From,
	}
	dispatcher := notify.NewDispatcher(mailer, s.config.QueueSize)

	//Register controllers
	registrationController := controllers.NewRegistrationController(applicationStorage, attachmentStorage, dispatcher, tokens)
	registrationController.RegisterRoutes(r)
	applicationController := controllers.NewApplicationController(applicationStorage, attachmentStorage, dispatcher, tokens)
	applicationController.RegisterRoutes(r)
	ratingController := controllers.NewRatingController(applicationStorage, tokens)
	ratingController.RegisterRoutes(r)
	leaderboardController := controllers.NewLeaderboardController(applicationStorage, tokens)
	leaderboardController.RegisterRoutes(r)
	accountController := controllers.NewAccountController(accountStorage, tokens)
	accountController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// startLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// startLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
