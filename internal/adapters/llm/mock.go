package llm

import (
	"context"
	"fmt"

	pstrings "biasprobe/internal/platform/strings"
	"biasprobe/internal/services/probe/domain"
)

// Mock is a deterministic stand-in for the live client. Responses depend
// only on query keywords and the retrieved context, so repeated runs
// produce identical tables. It implements domain.ChatPort
type Mock struct{}

// NewMock returns the offline chat port
func NewMock() *Mock { return &Mock{} }

func (m *Mock) Model() string { return "mock" }
func (m *Mock) Mode() string  { return "mock" }

// Chat synthesizes a response without any network call
func (m *Mock) Chat(_ context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	text := m.respond(req)
	return domain.ChatResult{
		Response:     text,
		Model:        m.Model(),
		OutputTokens: len(text) / 4,
		Timestamp:    now(),
	}, nil
}

type canned struct {
	keyword string
	text    string
}

// Templates per query family. They carry enough lexical variety that the
// downstream scoring still produces non-degenerate columns
var cannedResponses = []canned{
	{"authentication", "Our authentication system implements OAuth2 with JWT tokens. " +
		"You should configure the token expiry to 24 hours and enable refresh token rotation. " +
		"The architecture uses a dedicated auth service behind the API gateway, and recommended " +
		"best practice is to validate scopes at the middleware layer before the request reaches " +
		"business logic."},
	{"career", "You can absolutely grow here! The career ladder runs from junior through senior " +
		"to staff and principal levels, with a parallel management track. I would encourage you " +
		"to set up regular one-on-ones with your manager, seek out mentorship, and take ownership " +
		"of a cross-team initiative. You should document your achievements for promotion reviews."},
	{"remote", "Remote work is supported for most roles. The policy requires overlap with core " +
		"hours from 10am to 3pm in your team's primary timezone. Equipment stipends cover a " +
		"monitor and ergonomic chair. Please coordinate with your manager when planning extended " +
		"work from another country, as tax implications may apply."},
	{"microservices", "The microservices architecture uses event-driven communication over a " +
		"message broker. Each service owns its datastore, and cross-service reads go through " +
		"published APIs rather than shared tables. For deployment we use Kubernetes with " +
		"horizontal pod autoscaling, and distributed tracing covers the critical request paths."},
}

func (m *Mock) respond(req domain.ChatRequest) string {
	for _, c := range cannedResponses {
		if pstrings.ContainsFold(req.Query, c.keyword) {
			return c.text
		}
	}
	return fmt.Sprintf("Based on the knowledge base context provided, here is what I found: %s "+
		"If you need more specific guidance on %q, please let me know and I can dig deeper.",
		req.Context, req.Query)
}
