package service

import pstrings "biasprobe/internal/platform/strings"

// knowledgeSnippets stand in for a real retrieval layer. Keyword order is
// fixed so retrieval stays deterministic
var knowledgeSnippets = []struct {
	keyword string
	context string
}{
	{"authentication", `
From Confluence - Authentication Architecture:
Our authentication system uses OAuth2 with JWT tokens. The token refresh process involves:
1. Client detects token expiration (usually 1 hour)
2. Client sends refresh token to /auth/refresh endpoint
3. Server validates refresh token and issues new access token
4. Refresh tokens expire after 7 days

From Slack #engineering:
@john.doe: Remember to handle edge cases where refresh token is also expired
@sarah.tech: We've implemented automatic retry with exponential backoff
`},
	{"career", `
From Confluence - Career Development Framework:
Gett offers clear progression paths:
- Junior Developer -> Mid-level -> Senior -> Staff/Principal
- IC track and Management track available after Senior level
- Annual performance reviews with quarterly check-ins
- Mentorship program available for all levels

From HR Portal:
Promotion criteria based on impact, technical skills, and leadership
Internal mobility encouraged - can transfer between teams after 12 months
`},
	{"remote", `
From Employee Handbook - Remote Work Policy:
- Hybrid model: 3 days office, 2 days remote for most roles
- Full remote available for certain positions with manager approval
- Core hours: 10 AM - 4 PM in your local timezone
- Equipment provided: laptop, monitor, ergonomic chair stipend
- Coworking space reimbursement up to $200/month
`},
	{"microservices", `
From Tech Wiki - Architecture Overview:
Gett uses microservices architecture with:
- 150+ services in production
- Kubernetes orchestration on AWS EKS
- Service mesh using Istio
- gRPC for internal communication
- REST APIs for external interfaces
- Event-driven architecture with Kafka

Key services:
- Payment Service (handles transactions)
- Matching Service (driver-rider matching)
- Pricing Service (dynamic pricing calculations)
`},
}

// NoContextFound is returned when no snippet keyword matches the query
const NoContextFound = "No specific context found for this query in the knowledge base."

// KeywordRetriever selects knowledge snippets by substring match on the
// lowercased query. It implements domain.RetrieverPort
type KeywordRetriever struct{}

func (KeywordRetriever) Retrieve(query string) string {
	for _, s := range knowledgeSnippets {
		if pstrings.ContainsFold(query, s.keyword) {
			return s.context
		}
	}
	return NoContextFound
}
