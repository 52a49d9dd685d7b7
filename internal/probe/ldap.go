package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/probeherd/probeherd/internal/config"
	"github.com/probeherd/probeherd/internal/exception"
)

const (
	// DefaultLDAPPort standard cleartext ldap port
	DefaultLDAPPort uint16 = 389
	// DefaultLDAPSPort standard ldap-over-tls port
	DefaultLDAPSPort uint16 = 636
)

// root DSE attributes worth surfacing when an anonymous bind succeeds
var rootDSEAttributes = []string{
	"namingContexts",
	"defaultNamingContext",
	"supportedSASLMechanisms",
	"supportedLDAPVersion",
	"vendorName",
	"vendorVersion",
}

// LDAPProbe checks whether a directory server accepts anonymous
// (unauthenticated) binds. On success it reads the root DSE for server
// metadata. Success is a protocol-level accepted bind, not process exit.
type LDAPProbe struct {
	useLDAPS    bool
	useStartTLS bool
}

// NewLDAPProbe returns an anonymous bind probe. LDAPS and StartTLS are
// mutually exclusive.
func NewLDAPProbe(useLDAPS bool, useStartTLS bool) (*LDAPProbe, error) {
	if useLDAPS && useStartTLS {
		return nil, exception.NewConfigError(
			"cannot use both ldaps and starttls, pick one",
		)
	}

	return &LDAPProbe{
		useLDAPS:    useLDAPS,
		useStartTLS: useStartTLS,
	}, nil
}

// Describe implements the Probe interface
func (p *LDAPProbe) Describe() string {
	switch {
	case p.useLDAPS:
		return "ldap anonymous bind (ldaps)"
	case p.useStartTLS:
		return "ldap anonymous bind (starttls)"
	default:
		return "ldap anonymous bind"
	}
}

// Execute implements the Probe interface
func (p *LDAPProbe) Execute(ctx context.Context, target config.Target) (*Result, error) {
	timeout := 5 * time.Second

	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	connectStart := time.Now()

	conn, err := p.dial(target, timeout)

	if err != nil {
		return nil, fmt.Errorf("ldap connect failed: %w", err)
	}

	connectDuration := time.Since(connectStart)

	defer conn.Close()

	conn.SetTimeout(timeout)

	if p.useStartTLS {
		// probing for misconfiguration, not verifying the peer
		if err := conn.StartTLS(&tls.Config{InsecureSkipVerify: true}); err != nil {
			return nil, fmt.Errorf("starttls failed: %w", err)
		}
	}

	bindStart := time.Now()

	if err := conn.UnauthenticatedBind(""); err != nil {
		return nil, fmt.Errorf("anonymous bind rejected: %w", err)
	}

	result := &Result{
		Output: "anonymous bind accepted",
		Metadata: map[string]string{
			"tcp_connect_s": formatSeconds(connectDuration),
			"bind_s":        formatSeconds(time.Since(bindStart)),
		},
	}

	// bind succeeded, metadata read failures are informational only
	naming, err := readRootDSE(conn, result)

	if err != nil {
		result.Metadata["rootDSEError"] = err.Error()
		return result, nil
	}

	if len(naming) > 0 {
		sampleBaseSearch(conn, naming[0], result)
	}

	return result, nil
}

// formatSeconds renders a duration the way the report metadata carries
// timings, as fractional seconds
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.4f", d.Seconds())
}

func (p *LDAPProbe) dial(target config.Target, timeout time.Duration) (*ldap.Conn, error) {
	dialer := &net.Dialer{Timeout: timeout}

	if p.useLDAPS {
		port := target.Port

		if port == 0 {
			port = DefaultLDAPSPort
		}

		return ldap.DialURL(
			fmt.Sprintf("ldaps://%s:%d", target.Host, port),
			ldap.DialWithDialer(dialer),
			ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: true}),
		)
	}

	port := target.Port

	if port == 0 {
		port = DefaultLDAPPort
	}

	return ldap.DialURL(
		fmt.Sprintf("ldap://%s:%d", target.Host, port),
		ldap.DialWithDialer(dialer),
	)
}

// ldapSearcher captures the subset of *ldap.Conn used for metadata
// reads after a successful bind
type ldapSearcher interface {
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
}

// readRootDSE collects directory metadata into the result and returns
// any advertised naming contexts
func readRootDSE(conn ldapSearcher, result *Result) ([]string, error) {
	req := ldap.NewSearchRequest(
		"",
		ldap.ScopeBaseObject,
		ldap.NeverDerefAliases,
		0,
		0,
		false,
		"(objectClass=*)",
		rootDSEAttributes,
		nil,
	)

	res, err := conn.Search(req)

	if err != nil {
		return nil, err
	}

	if len(res.Entries) == 0 {
		return nil, fmt.Errorf("root DSE search returned no entries")
	}

	naming := []string{}
	lines := []string{result.Output}

	for _, attr := range res.Entries[0].Attributes {
		value := strings.Join(attr.Values, ", ")
		result.Metadata[attr.Name] = value
		lines = append(lines, fmt.Sprintf("%s: %s", attr.Name, value))

		if attr.Name == "namingContexts" {
			naming = append(naming, attr.Values...)
		}
	}

	result.Output = strings.Join(lines, "\n")

	return naming, nil
}

// sampleBaseSearch reads a single entry from the first naming context
// to confirm anonymous access extends past the root DSE
func sampleBaseSearch(conn ldapSearcher, base string, result *Result) {
	req := ldap.NewSearchRequest(
		base,
		ldap.ScopeBaseObject,
		ldap.NeverDerefAliases,
		1,
		0,
		false,
		"(objectClass=*)",
		[]string{"objectClass"},
		nil,
	)

	result.Metadata["sample_base"] = base

	res, err := conn.Search(req)

	if err != nil || len(res.Entries) == 0 {
		result.Metadata["sample_base_found"] = "false"
		return
	}

	result.Metadata["sample_base_found"] = "true"
}
