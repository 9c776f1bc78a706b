package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	approvalApp "github.com/Saran-Akshintala/autocontent-pro-sub000/approval/application"
	domainApproval "github.com/Saran-Akshintala/autocontent-pro-sub000/approval/domain"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/content/repository"
	coreconfig "github.com/Saran-Akshintala/autocontent-pro-sub000/core/config"
	coreDB "github.com/Saran-Akshintala/autocontent-pro-sub000/core/database"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/infrastructure/contentapi"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/infrastructure/transport"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/infrastructure/valkey"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/cmdworker"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/ratelimit"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/utils"
	plannerApp "github.com/Saran-Akshintala/autocontent-pro-sub000/planner/application"
	domainPlanner "github.com/Saran-Akshintala/autocontent-pro-sub000/planner/domain"
	"github.com/Saran-Akshintala/autocontent-pro-sub000/ui/websocket"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	appCtx    context.Context
	appCancel context.CancelFunc

	contentDB *gorm.DB
	vkClient  *valkey.Client
	serverID  string

	// Collaborator APIs (embedded gorm store or remote HTTP clients,
	// depending on CONTENT_API_MODE).
	postsAPI     domainPlanner.IPostsAPI
	schedulesAPI domainPlanner.ISchedulesAPI
	approvalAPI  domainApproval.IApprovalAPI

	rateLimiter *ratelimit.Limiter
	dispatcher  *approvalApp.Dispatcher
	eventStore  *plannerApp.EventStore
	coordinator *plannerApp.RescheduleCoordinator
	workerPool  *cmdworker.CommandWorkerPool

	flagPort      string
	flagDebug     bool
	flagBasicAuth []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Short: "Content approval and scheduling engine",
	Long: `Pacing-aware approval notifications and calendar scheduling for
AutoContent Pro. Run the "rest" subcommand to expose the HTTP API.`,
}

func init() {
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig, initApp)
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&flagPort,
		"port", "p",
		"",
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagDebug,
		"debug", "d",
		false,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringSliceVarP(
		&flagBasicAuth,
		"basic-auth", "b",
		nil,
		"basic auth credential | -b=yourUsername:yourPassword",
	)
}

// initEnvConfig loads configuration from the environment, then lets CLI
// flags win over it.
func initEnvConfig() {
	if _, err := coreconfig.LoadConfig(); err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	if envDebug := viper.GetBool("app_debug"); envDebug {
		coreconfig.Global.App.Debug = true
	}
	if flagPort != "" {
		coreconfig.Global.App.Port = flagPort
	}
	if flagDebug {
		coreconfig.Global.App.Debug = true
	}
	if len(flagBasicAuth) > 0 {
		coreconfig.Global.App.BasicAuth = flagBasicAuth
	}
}

func initApp() {
	cfg := coreconfig.Global

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := utils.CreateFolder(cfg.Paths.Storages); err != nil {
		logrus.Errorln(err)
	}

	appCtx, appCancel = context.WithCancel(context.Background())

	serverID = utils.GetPersistentServerID(cfg.App.ServerID, cfg.Paths.Storages)

	// Valkey is optional; everything degrades to single-node behavior
	// without it.
	if cfg.Database.ValkeyEnabled {
		client, err := valkey.NewClient(valkey.Config{
			Address:   cfg.Database.ValkeyAddress,
			Password:  cfg.Database.ValkeyPassword,
			DB:        cfg.Database.ValkeyDB,
			KeyPrefix: cfg.Database.ValkeyKeyPrefix,
		})
		if err != nil {
			logrus.Warnf("[APP] Valkey unavailable, continuing without it: %v", err)
		} else {
			vkClient = client
		}
	}

	initContentAPIs(cfg)

	// Outbound transport toward the messaging gateway.
	var msgTransport domainApproval.IMessageTransport
	if cfg.Notifier.WebhookURL != "" {
		msgTransport = transport.NewWebhookTransport(transport.WebhookConfig{
			URL:                cfg.Notifier.WebhookURL,
			Secret:             cfg.Notifier.WebhookSecret,
			InsecureSkipVerify: cfg.Notifier.WebhookInsecureSkipVerify,
		})
	} else {
		logrus.Warn("[APP] NOTIFY_TRANSPORT_WEBHOOK_URL not set; outbound messages will only be logged")
		msgTransport = transport.NewLogTransport()
	}

	rateLimiter = ratelimit.NewLimiter(
		time.Duration(cfg.Notifier.BaseDelayMs)*time.Millisecond,
		time.Duration(cfg.Notifier.JitterRangeMs)*time.Millisecond,
	)
	rateLimiter.StartBackgroundCleanup(appCtx)

	dispatcher = approvalApp.NewDispatcher(
		approvalAPI,
		msgTransport,
		rateLimiter,
		vkClient,
		time.Duration(cfg.Notifier.BulkSendDelayMs)*time.Millisecond,
	)

	eventStore = plannerApp.NewEventStore(postsAPI)
	eventStore.SetBroadcast(websocket.Publish)
	coordinator = plannerApp.NewRescheduleCoordinator(eventStore, schedulesAPI)

	workerPool = cmdworker.NewCommandWorkerPool(cfg.WorkerPool.Size, cfg.WorkerPool.QueueSize)
	workerPool.Start(appCtx)
}

// initContentAPIs wires the three collaborator contracts. Embedded mode
// serves them from the local gorm store; remote mode talks to the content
// service over HTTP.
func initContentAPIs(cfg *coreconfig.Config) {
	if strings.EqualFold(cfg.Upstream.Mode, "remote") {
		apiCfg := contentapi.Config{
			PostsURL:     cfg.Upstream.PostsURL,
			SchedulesURL: cfg.Upstream.SchedulesURL,
			ApprovalURL:  cfg.Upstream.ApprovalURL,
			APIToken:     cfg.Upstream.APIToken,
		}
		postsAPI = contentapi.NewPostsClient(apiCfg)
		schedulesAPI = contentapi.NewSchedulesClient(apiCfg)
		approvalAPI = contentapi.NewApprovalClient(apiCfg)
		return
	}

	db, err := coreDB.NewDatabase(cfg)
	if err != nil {
		logrus.Fatalf("failed to open content database: %v", err)
	}
	contentDB = db

	repo := repository.NewContentGormRepository(db)
	if err := repo.InitSchema(appCtx); err != nil {
		logrus.Fatalf("failed to migrate content schema: %v", err)
	}

	postsAPI = repo
	schedulesAPI = repo
	approvalAPI = repo
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp performs a clean shutdown of all background workers and
// connections.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if workerPool != nil {
		workerPool.Stop()
	}

	if appCancel != nil {
		appCancel()
	}

	if vkClient != nil {
		vkClient.Close()
	}

	if contentDB != nil {
		if sqlDB, err := contentDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
