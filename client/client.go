// Package client is a typed façade over the ChirpStack v4 gRPC management API.
// It authenticates once at construction, attaches the session token to every
// outbound call, and exposes CRUD and list methods for tenants, applications,
// device profiles, devices, and gateways.
package client

import (
	"context"
	"errors"
	"time"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Options holds the construction parameters for a Client.
type Options struct {
	// Email is the account email used for the login call.
	Email string
	// Password is the account password used for the login call.
	Password string
	// Server is the ChirpStack gRPC API address (host:port, usually port 8080).
	Server string
}

type settings struct {
	log      zerolog.Logger
	pageSize uint32
	dialOpts []grpc.DialOption
}

// Option customizes a Client beyond the required Options.
type Option func(*settings)

// WithLogger sets the logger used for login and re-authentication events.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithPageSize sets the page size used by the ListAll helpers. Default 100.
func WithPageSize(n uint32) Option {
	return func(s *settings) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithDialOptions appends extra gRPC dial options (e.g. a custom dialer).
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(s *settings) { s.dialOpts = append(s.dialOpts, opts...) }
}

// WithTelemetry enables OpenTelemetry client instrumentation on the
// connection. Traces and metrics go to whatever providers the embedding
// application has registered globally.
func WithTelemetry() Option {
	return func(s *settings) {
		s.dialOpts = append(s.dialOpts, grpc.WithStatsHandler(otelgrpc.NewClientHandler()))
	}
}

// Client is a session-authenticated ChirpStack API client. It is safe for
// concurrent use; the session token is the only mutable state and is only
// rewritten by transparent re-authentication.
type Client struct {
	conn  *grpc.ClientConn
	creds *sessionCredentials

	log      zerolog.Logger
	pageSize uint32

	tenants        api.TenantServiceClient
	applications   api.ApplicationServiceClient
	deviceProfiles api.DeviceProfileServiceClient
	devices        api.DeviceServiceClient
	gateways       api.GatewayServiceClient
}

// New opens a connection to opts.Server, logs in with opts.Email and
// opts.Password, and returns a client holding the session token.
// Returns ErrAuthentication if the credentials are rejected and ErrConnection
// if the address is unreachable.
func New(ctx context.Context, opts Options, extra ...Option) (*Client, error) {
	if opts.Email == "" || opts.Password == "" {
		return nil, errors.New("client: email and password must be set")
	}
	if opts.Server == "" {
		return nil, errors.New("client: server address must be set")
	}

	s := settings{
		log:      zerolog.Nop(),
		pageSize: DefaultPageSize,
	}
	for _, o := range extra {
		o(&s)
	}

	creds := &sessionCredentials{email: opts.Email, password: opts.Password}
	c := &Client{
		creds:    creds,
		log:      s.log,
		pageSize: s.pageSize,
	}

	dialOpts := []grpc.DialOption{
		// The upstream API endpoint speaks plaintext gRPC, same as the channel
		// the server's own web interface uses.
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithPerRPCCredentials(creds),
		grpc.WithChainUnaryInterceptor(c.reauthUnaryInterceptor()),
	}
	dialOpts = append(dialOpts, s.dialOpts...)

	conn, err := grpc.NewClient(opts.Server, dialOpts...)
	if err != nil {
		return nil, wrapError("dial", err)
	}

	c.conn = conn
	creds.internal = api.NewInternalServiceClient(conn)
	c.tenants = api.NewTenantServiceClient(conn)
	c.applications = api.NewApplicationServiceClient(conn)
	c.deviceProfiles = api.NewDeviceProfileServiceClient(conn)
	c.devices = api.NewDeviceServiceClient(conn)
	c.gateways = api.NewGatewayServiceClient(conn)

	c.log.Info().Str("server", opts.Server).Msg("connecting to chirpstack server")
	if err := creds.login(ctx); err != nil {
		_ = conn.Close()
		return nil, wrapError("login", err)
	}
	c.log.Info().Str("server", opts.Server).Msg("authenticated with chirpstack server")

	return c, nil
}

// Close releases the underlying connection. The client must not be used
// afterwards.
func (c *Client) Close() error {
	return c.conn.Close()
}

// TokenExpiresAt returns the expiry time of the held session token. The token
// is parsed without signature verification; this is introspection, not
// validation.
func (c *Client) TokenExpiresAt() (time.Time, error) {
	tok, _, err := jwt.NewParser().ParseUnverified(c.creds.token(), jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("client: session token has no expiry claim")
	}
	return exp.Time, nil
}
