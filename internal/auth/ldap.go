package auth

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	ldapDefaultAttr    = "uid"
	ldapDefaultTimeout = 10 * time.Second
	ldapUsernameToken  = "{username}"
)

var (
	// ErrLDAPDisabled is returned when LDAP authentication is disabled via configuration.
	ErrLDAPDisabled = errors.New("ldap authentication is disabled")
	// ErrLDAPEmptyPassword rejects empty passwords, most directories treat them as an anonymous bind.
	ErrLDAPEmptyPassword = errors.New("ldap password can not be empty")
)

// LDAPConfig configures verification of basic credentials against a directory.
type LDAPConfig struct {
	Enabled bool
	Host    string
	Port    int
	// UseSSL dials ldaps://, UseTLS upgrades a plain connection with StartTLS.
	UseSSL     bool
	UseTLS     bool
	SkipVerify bool // insecure, for testing only
	// BindDN and BindPassword of the service account used for the user search, anonymous if empty.
	BindDN       string
	BindPassword string
	BaseDN       string
	// UserFilter finds the user entry, {username} is replaced with the escaped login name.
	UserFilter string
	// UsernameAttr holds the login name, it becomes the subject of the token identifier.
	UsernameAttr string
	Timeout      time.Duration
}

func (c *LDAPConfig) url() string {
	scheme := "ldap"
	if c.UseSSL {
		scheme = "ldaps"
	}

	return scheme + "://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *LDAPConfig) tlsConfig() *tls.Config {
	if !c.UseSSL && !c.UseTLS {
		return nil
	}

	return &tls.Config{
		InsecureSkipVerify: c.SkipVerify, //nolint:gosec
		ServerName:         c.Host,
	}
}

// LDAPProvider verifies HTTP basic credentials by binding as the user.
// The token identifier is "ldap|<username attribute>".
type LDAPProvider struct {
	config *LDAPConfig
}

// NewLDAPProvider creates a new LDAP provider and fills in config defaults.
func NewLDAPProvider(config *LDAPConfig) (*LDAPProvider, error) {
	if !config.Enabled {
		return nil, ErrLDAPDisabled
	}

	if config.UsernameAttr == "" {
		config.UsernameAttr = ldapDefaultAttr
	}

	if config.UserFilter == "" {
		config.UserFilter = "(" + config.UsernameAttr + "=" + ldapUsernameToken + ")"
	}

	if config.Timeout <= 0 {
		config.Timeout = ldapDefaultTimeout
	}

	return &LDAPProvider{config: config}, nil
}

// Name implements Provider.
func (p *LDAPProvider) Name() string {
	return "ldap"
}

// Verify implements Provider.
func (p *LDAPProvider) Verify(ctx context.Context, cred Credential) (*Identity, error) {
	if cred.Scheme != SchemeBasic {
		return nil, ErrUnsupportedCredential
	}

	if cred.Password == "" {
		return nil, ErrLDAPEmptyPassword
	}

	conn, err := p.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer p.close(conn)

	entry, err := p.findUser(conn, cred.Username)
	if err != nil {
		return nil, err
	}

	if err = conn.Bind(entry.DN, cred.Password); err != nil {
		return nil, errors.Wrapf(err, "ldap bind as %s", entry.DN)
	}

	subject := entry.GetAttributeValue(p.config.UsernameAttr)
	if subject == "" {
		subject = cred.Username
	}

	return &Identity{
		TokenIdentifier: joinIdentifier(p.Name(), subject),
		Provider:        p.Name(),
	}, nil
}

// Ping dials the directory and binds the service account.
func (p *LDAPProvider) Ping(ctx context.Context) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return err
	}

	p.close(conn)

	return nil
}

// dial connects, upgrades to TLS when configured and binds the service account.
func (p *LDAPProvider) dial(ctx context.Context) (*ldap.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	tlsConfig := p.config.tlsConfig()

	conn, err := ldap.DialURL(p.config.url(),
		ldap.DialWithDialer(&net.Dialer{Timeout: p.config.Timeout}),
		ldap.DialWithTLSConfig(tlsConfig),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "ldap dial %s", p.config.url())
	}

	conn.SetTimeout(p.config.Timeout)

	if p.config.UseTLS && !p.config.UseSSL {
		if err = conn.StartTLS(tlsConfig); err != nil {
			p.close(conn)

			return nil, errors.Wrap(err, "ldap start tls")
		}
	}

	if p.config.BindDN != "" {
		if err = conn.Bind(p.config.BindDN, p.config.BindPassword); err != nil {
			p.close(conn)

			return nil, errors.Wrap(err, "ldap service account bind")
		}
	}

	return conn, nil
}

func (p *LDAPProvider) userFilter(username string) string {
	return strings.ReplaceAll(p.config.UserFilter, ldapUsernameToken, ldap.EscapeFilter(username))
}

// findUser returns the single entry matching username.
func (p *LDAPProvider) findUser(conn *ldap.Conn, username string) (*ldap.Entry, error) {
	res, err := conn.Search(ldap.NewSearchRequest(
		p.config.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		2, //nolint:mnd // one more than needed detects ambiguous filters
		int(p.config.Timeout.Seconds()),
		false,
		p.userFilter(username),
		[]string{p.config.UsernameAttr},
		nil,
	))
	if err != nil && !ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) {
		return nil, errors.Wrap(err, "ldap user search")
	}

	if res == nil {
		return nil, ErrMultipleUsersFound
	}

	switch len(res.Entries) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		return res.Entries[0], nil
	default:
		return nil, ErrMultipleUsersFound
	}
}

func (p *LDAPProvider) close(conn *ldap.Conn) {
	if err := conn.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close LDAP connection")
	}
}
