package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	awsSession "github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adamsinnett/omorgan-events/core"
	handler "github.com/adamsinnett/omorgan-events/handler/http"
	"github.com/adamsinnett/omorgan-events/platform/limiter"
	"github.com/adamsinnett/omorgan-events/platform/metrics"
	"github.com/adamsinnett/omorgan-events/platform/redis"
	"github.com/adamsinnett/omorgan-events/platform/token"
	"github.com/adamsinnett/omorgan-events/service/admin"
	"github.com/adamsinnett/omorgan-events/service/attendee"
	"github.com/adamsinnett/omorgan-events/service/event"
	"github.com/adamsinnett/omorgan-events/service/invitation"
	"github.com/adamsinnett/omorgan-events/service/message"
	"github.com/adamsinnett/omorgan-events/service/reaction"
)

// Logging and telemetry identifiers.
const (
	component        = "gateway-http"
	namespaceService = "service"
	namespaceSource  = "source"
	subsystemQueue   = "queue"
	storeService     = "postgres"
)

// Versions.
const (
	versionCurrent = "0.1"
)

// Supported source types.
const (
	sourceNop = "nop"
	sourceSQS = "sqs"
)

// Prefixes.
const (
	prefixRateLimiter = "ratelimiter:credential:"
)

// Timeouts
const (
	defaultReadTimeout  = 2 * time.Second
	defaultWriteTimeout = 3 * time.Second
)

// Buildtime vars.
var (
	revision = "0000000-dev"
)

func main() {
	var (
		begin = time.Now()

		adminEmail    = flag.String("admin.email", "", "Email of the admin account ensured at startup")
		adminPassword = flag.String("admin.password", "", "Password of the admin account ensured at startup")
		awsID         = flag.String("aws.id", "", "Identifier for AWS requests")
		awsRegion     = flag.String("aws.region", "us-east-1", "AWS Region to operate in")
		awsSecret     = flag.String("aws.secret", "", "Identification secret for AWS requests")
		listenAddr    = flag.String("listen.addr", ":8083", "HTTP bind address for main API")
		postgresURL   = flag.String("postgres.url", "", "Postgres URL to connect to")
		redisAddr     = flag.String("redis.addr", ":6379", "Redis address to connect to")
		source        = flag.String("source", sourceNop, "Source type used for state change propagations")
		telemetryAddr = flag.String("telemetry.addr", ":9000", "HTTP bind address where prometheus telemetry is exposed")
		tokenSecret   = flag.String("token.secret", "", "Secret used to sign and verify credentials")
	)
	flag.Parse()

	// Setup logging.
	logger := log.With(
		log.NewJSONLogger(os.Stdout),
		"caller", log.Caller(3),
		"component", component,
		"revision", revision,
	)

	hostname, err := os.Hostname()
	if err != nil {
		logger.Log("err", err, "lifecycle", "abort")
	}

	logger = log.With(logger, "host", hostname)

	if *tokenSecret == "" {
		logger.Log(
			"err", "token secret missing",
			"lifecycle", "abort",
		)
		os.Exit(1)
	}

	// Setup instrumentation.
	go func(addr string) {
		logger.Log(
			"duration", time.Since(begin).Nanoseconds(),
			"lifecycle", "start",
			"listen", addr,
			"sub", "telemetry",
		)

		http.Handle("/metrics", promhttp.Handler())

		err := http.ListenAndServe(addr, nil)
		if err != nil {
			logger.Log("err", err, "lifecycle", "abort", "sub", "telemetry")
			os.Exit(1)
		}
	}(*telemetryAddr)

	serviceErrCount, serviceOpCount, serviceOpLatency := metrics.KeyMetrics(
		namespaceService,
		metrics.FieldComponent,
		metrics.FieldMethod,
		metrics.FieldNamespace,
		metrics.FieldService,
		metrics.FieldStore,
	)

	sourceFieldKeys := []string{
		metrics.FieldComponent,
		metrics.FieldMethod,
		metrics.FieldNamespace,
		metrics.FieldSource,
		metrics.FieldStore,
	}

	sourceErrCount, sourceOpCount, sourceOpLatency := metrics.KeyMetrics(
		namespaceSource,
		sourceFieldKeys...,
	)

	sourceQueueLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespaceSource,
			Subsystem: subsystemQueue,
			Name:      "latency_seconds",
			Help:      "Distribution of message queue latency in seconds",
			Buckets:   metrics.BucketsQueue,
		},
		sourceFieldKeys,
	)
	prometheus.MustRegister(sourceQueueLatency)

	// Setup clients.
	var (
		aSession = awsSession.New(&aws.Config{
			Credentials: credentials.NewStaticCredentials(*awsID, *awsSecret, ""),
			Region:      aws.String(*awsRegion),
		})
		redisPool   = redis.Pool(*redisAddr, "")
		rateLimiter = limiter.Redis(redisPool, prefixRateLimiter)
		sqsAPI      = sqs.New(aSession)

		issuer   = token.NewIssuer([]byte(*tokenSecret))
		verifier = token.NewVerifier([]byte(*tokenSecret))
	)

	pgClient, err := sqlx.Connect(storeService, *postgresURL)
	if err != nil {
		logger.Log("err", err, "lifecycle", "abort")
		os.Exit(1)
	}

	// Setup sources.
	var msgSource message.Source

	switch *source {
	case sourceNop:
		msgSource = message.NopSource()
	case sourceSQS:
		msgSource, err = message.SQSSource(sqsAPI)
		if err != nil {
			logger.Log("err", err, "lifecycle", "abort")
			os.Exit(1)
		}
	default:
		logger.Log(
			"err", fmt.Sprintf("Source type '%s' not supported", *source),
			"lifecycle", "abort",
		)
		os.Exit(1)
	}

	msgSource = message.InstrumentSourceMiddleware(
		component,
		*source,
		sourceErrCount,
		sourceOpCount,
		sourceOpLatency,
		sourceQueueLatency,
	)(msgSource)
	msgSource = message.LogSourceMiddleware(*source, logger)(msgSource)

	// Setup services.
	var admins admin.Service
	admins = admin.PostgresService(pgClient)
	admins = admin.InstrumentServiceMiddleware(
		component,
		storeService,
		serviceErrCount,
		serviceOpCount,
		serviceOpLatency,
	)(admins)
	admins = admin.LogServiceMiddleware(logger, storeService)(admins)

	var attendees attendee.Service
	attendees = attendee.PostgresService(pgClient)
	attendees = attendee.InstrumentServiceMiddleware(
		component,
		storeService,
		serviceErrCount,
		serviceOpCount,
		serviceOpLatency,
	)(attendees)
	attendees = attendee.LogServiceMiddleware(logger, storeService)(attendees)

	var events event.Service
	events = event.PostgresService(pgClient)
	events = event.InstrumentServiceMiddleware(
		component,
		storeService,
		serviceErrCount,
		serviceOpCount,
		serviceOpLatency,
	)(events)
	events = event.LogServiceMiddleware(logger, storeService)(events)

	var invitations invitation.Service
	invitations = invitation.PostgresService(pgClient)
	invitations = invitation.InstrumentServiceMiddleware(
		component,
		storeService,
		serviceErrCount,
		serviceOpCount,
		serviceOpLatency,
	)(invitations)
	invitations = invitation.LogServiceMiddleware(logger, storeService)(invitations)

	var messages message.Service
	messages = message.PostgresService(pgClient)
	messages = message.InstrumentServiceMiddleware(
		component,
		storeService,
		serviceErrCount,
		serviceOpCount,
		serviceOpLatency,
	)(messages)
	messages = message.LogServiceMiddleware(logger, storeService)(messages)
	// Combine message service and source.
	messages = message.SourcingServiceMiddleware(msgSource)(messages)

	var reactions reaction.Service
	reactions = reaction.PostgresService(pgClient)
	reactions = reaction.InstrumentServiceMiddleware(
		component,
		storeService,
		serviceErrCount,
		serviceOpCount,
		serviceOpLatency,
	)(reactions)
	reactions = reaction.LogServiceMiddleware(logger, storeService)(reactions)

	// Ensure the bootstrap admin exists.
	if *adminEmail != "" {
		as, err := admins.Query(core.NamespaceDefault, admin.QueryOptions{
			Emails: []string{
				*adminEmail,
			},
			Limit: 1,
		})
		if err != nil {
			logger.Log("err", err, "lifecycle", "abort")
			os.Exit(1)
		}

		if len(as) == 0 {
			_, err := core.AdminCreate(admins)(core.NamespaceDefault, *adminEmail, *adminPassword)
			if err != nil {
				logger.Log("err", err, "lifecycle", "abort")
				os.Exit(1)
			}

			logger.Log("admin", *adminEmail, "lifecycle", "bootstrap")
		}
	}

	// Setup middlewares.
	var (
		withPublic = handler.Chain(
			handler.CtxPrepare(versionCurrent),
			handler.Log(logger),
			handler.Instrument(component),
			handler.SecureHeaders(),
			handler.CORS(),
			handler.Gzip(),
			handler.ValidateContent(),
		)
		withIdentity = handler.Chain(
			withPublic,
			handler.CtxIdentity(verifier),
			handler.RateLimit(rateLimiter),
		)
		withAdmin = handler.Chain(
			withIdentity,
			handler.RequireAdmin(),
		)
	)

	// Setup Router.
	router := mux.NewRouter().StrictSlash(true)

	router.Methods("GET").Path(`/health-45016490610398192`).Name("healthcheck").HandlerFunc(
		handler.Wrap(
			handler.CtxPrepare(versionCurrent),
			handler.Health(pgClient, redisPool),
		),
	)

	current := router.PathPrefix("/api").Subrouter()

	// Auth routes.
	current.Methods("POST").Path(`/auth`).Name("adminLogin").HandlerFunc(
		handler.Wrap(
			withPublic,
			handler.AdminLogin(
				core.AdminLogin(admins, issuer),
			),
		),
	)

	current.Methods("POST").Path(`/anonymous-auth`).Name("guestAuth").HandlerFunc(
		handler.Wrap(
			withPublic,
			handler.GuestAuth(
				core.GuestAuth(invitations, issuer),
			),
		),
	)

	// Event routes.
	current.Methods("GET").Path(`/events`).Name("eventList").HandlerFunc(
		handler.Wrap(
			withAdmin,
			handler.EventList(
				core.EventList(events),
			),
		),
	)

	current.Methods("POST").Path(`/events`).Name("eventCreate").HandlerFunc(
		handler.Wrap(
			withAdmin,
			handler.EventCreate(
				core.EventCreate(events),
			),
		),
	)

	current.Methods("GET").Path(`/events/{eventID:[0-9]+}`).Name("eventRetrieve").HandlerFunc(
		handler.Wrap(
			withAdmin,
			handler.EventRetrieve(
				core.EventFetch(events),
			),
		),
	)

	current.Methods("PUT").Path(`/events/{eventID:[0-9]+}`).Name("eventUpdate").HandlerFunc(
		handler.Wrap(
			withAdmin,
			handler.EventUpdate(
				core.EventUpdate(events),
			),
		),
	)

	current.Methods("DELETE").Path(`/events/{eventID:[0-9]+}`).Name("eventDelete").HandlerFunc(
		handler.Wrap(
			withAdmin,
			handler.EventDelete(
				core.EventDelete(events),
			),
		),
	)

	current.Methods("GET").Path(`/events/{eventID:[0-9]+}/attendees`).Name("attendeeList").HandlerFunc(
		handler.Wrap(
			withAdmin,
			handler.AttendeeListAdmin(
				core.EventFetch(events),
				core.AttendeeList(attendees),
			),
		),
	)

	// Invitation routes.
	current.Methods("GET").Path(`/events/{eventID:[0-9]+}/invitations`).Name("invitationList").HandlerFunc(
		handler.Wrap(
			withAdmin,
			handler.InvitationList(
				core.InvitationList(events, invitations),
			),
		),
	)

	current.Methods("POST").Path(`/events/{eventID:[0-9]+}/invitations`).Name("invitationCreate").HandlerFunc(
		handler.Wrap(
			withAdmin,
			handler.InvitationCreate(
				core.InvitationCreate(events, invitations),
			),
		),
	)

	current.Methods("DELETE").Path(`/invitations/{invitationID:[0-9]+}`).Name("invitationRevoke").HandlerFunc(
		handler.Wrap(
			withAdmin,
			handler.InvitationRevoke(
				core.InvitationRevoke(events, invitations),
			),
		),
	)

	// Invite routes.
	current.Methods("GET").Path(`/invites/{token}`).Name("inviteRetrieve").HandlerFunc(
		handler.Wrap(
			withPublic,
			handler.InviteRetrieve(
				core.InvitationFetch(attendees, events, invitations),
			),
		),
	)

	current.Methods("POST").Path(`/invites/{token}/rsvp`).Name("inviteRedeem").HandlerFunc(
		handler.Wrap(
			withPublic,
			handler.InviteRedeem(
				core.AttendeeCreate(attendees, invitations),
			),
		),
	)

	// Message routes.
	current.Methods("GET").Path(`/events/{eventID:[0-9]+}/messages`).Name("messageList").HandlerFunc(
		handler.Wrap(
			withIdentity,
			handler.MessageList(
				core.WallAuthorize(events, invitations),
				core.MessageList(events, messages, reactions),
			),
		),
	)

	current.Methods("POST").Path(`/events/{eventID:[0-9]+}/messages`).Name("messageCreate").HandlerFunc(
		handler.Wrap(
			withIdentity,
			handler.MessageCreate(
				core.WallAuthorize(events, invitations),
				core.MessageCreate(events, messages),
			),
		),
	)

	// Reaction routes.
	current.Methods("PUT").Path(`/messages/{messageID:[0-9]+}/reactions`).Name("reactionToggle").HandlerFunc(
		handler.Wrap(
			withIdentity,
			handler.ReactionToggle(
				core.ReactionToggle(messages, reactions),
			),
		),
	)

	// Setup server.
	server := &http.Server{
		Addr:         *listenAddr,
		Handler:      router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	logger.Log(
		"duration", time.Since(begin).Nanoseconds(),
		"lifecycle", "start",
		"listen", *listenAddr,
		"sub", "api",
	)

	err = server.ListenAndServe()
	if err != nil {
		logger.Log("err", err, "lifecycle", "abort", "sub", "api")
		os.Exit(1)
	}
}
