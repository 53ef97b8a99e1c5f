package client

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/internal/endpoint"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

type operatorGroup int

const (
	keywordGroup operatorGroup = iota
	fromGroup
	toGroup
	operatorGroups
)

// TweetSearchClient implements twapi.TweetSearchClient against the recent
// search endpoint.
//
// The query is assembled in a fixed order whatever order the setters were
// called in: keywords, from-users, to-users, conversation, locales, media,
// then max_results, then the field selections, then the pagination token.
type TweetSearchClient struct {
	request

	keywords     []string
	keywordOp    twapi.Operator
	from         []string
	fromOp       twapi.Operator
	to           []string
	toOp         twapi.Operator
	// opErrs holds the rejected operator per group until a valid one replaces it.
	opErrs       [operatorGroups]error
	conversation string
	locales      []string
	onlyMedia    bool
	maxResults   int
	metrics      bool
	userDetails  bool
	mediaDetails bool
}

// NewTweetSearchClient creates a new search builder.
func NewTweetSearchClient(c *Client) *TweetSearchClient {
	b := &TweetSearchClient{
		keywordOp: twapi.OperatorOr,
		fromOp:    twapi.OperatorOr,
		toOp:      twapi.OperatorOr,
	}
	b.request = newRequest(c, b.plan)

	return b
}

// Keywords implements twapi.TweetSearchClient.Keywords.
func (b *TweetSearchClient) Keywords(keywords ...string) twapi.TweetSearchClient {
	b.keywords = append(b.keywords, nonEmpty(keywords)...)

	return b
}

// KeywordOperator implements twapi.TweetSearchClient.KeywordOperator.
func (b *TweetSearchClient) KeywordOperator(op twapi.Operator) twapi.TweetSearchClient {
	b.keywordOp = b.operator(keywordGroup, op, b.keywordOp)

	return b
}

// FromUsers implements twapi.TweetSearchClient.FromUsers.
func (b *TweetSearchClient) FromUsers(usernames ...string) twapi.TweetSearchClient {
	b.from = append(b.from, nonEmpty(usernames)...)

	return b
}

// FromOperator implements twapi.TweetSearchClient.FromOperator.
func (b *TweetSearchClient) FromOperator(op twapi.Operator) twapi.TweetSearchClient {
	b.fromOp = b.operator(fromGroup, op, b.fromOp)

	return b
}

// ToUsers implements twapi.TweetSearchClient.ToUsers.
func (b *TweetSearchClient) ToUsers(usernames ...string) twapi.TweetSearchClient {
	b.to = append(b.to, nonEmpty(usernames)...)

	return b
}

// ToOperator implements twapi.TweetSearchClient.ToOperator.
func (b *TweetSearchClient) ToOperator(op twapi.Operator) twapi.TweetSearchClient {
	b.toOp = b.operator(toGroup, op, b.toOp)

	return b
}

// Conversation implements twapi.TweetSearchClient.Conversation.
func (b *TweetSearchClient) Conversation(conversationID string) twapi.TweetSearchClient {
	b.conversation = strings.TrimSpace(conversationID)

	return b
}

// Locales implements twapi.TweetSearchClient.Locales.
func (b *TweetSearchClient) Locales(locales ...string) twapi.TweetSearchClient {
	b.locales = append(b.locales, nonEmpty(locales)...)

	return b
}

// OnlyWithMedia implements twapi.TweetSearchClient.OnlyWithMedia.
func (b *TweetSearchClient) OnlyWithMedia() twapi.TweetSearchClient {
	b.onlyMedia = true

	return b
}

// MaxResults implements twapi.TweetSearchClient.MaxResults. The API accepts
// 10 to 100; the value is sent as given.
func (b *TweetSearchClient) MaxResults(n int) twapi.TweetSearchClient {
	b.maxResults = n

	return b
}

// ShowMetrics implements twapi.TweetSearchClient.ShowMetrics.
func (b *TweetSearchClient) ShowMetrics() twapi.TweetSearchClient {
	b.metrics = true

	return b
}

// ShowUserDetails implements twapi.TweetSearchClient.ShowUserDetails.
func (b *TweetSearchClient) ShowUserDetails() twapi.TweetSearchClient {
	b.userDetails = true

	return b
}

// ShowMediaDetails implements twapi.TweetSearchClient.ShowMediaDetails.
func (b *TweetSearchClient) ShowMediaDetails() twapi.TweetSearchClient {
	b.mediaDetails = true

	return b
}

// PaginationToken implements twapi.TweetSearchClient.PaginationToken.
func (b *TweetSearchClient) PaginationToken(token string) twapi.TweetSearchClient {
	b.setPaginationToken(token)

	return b
}

// WithAuthMode implements twapi.TweetSearchClient.WithAuthMode.
func (b *TweetSearchClient) WithAuthMode(mode twapi.AuthMode) twapi.TweetSearchClient {
	b.setAuthMode(mode)

	return b
}

// operator validates op for one group. A valid op clears any earlier
// rejection for that group; an invalid one keeps the current operator.
func (b *TweetSearchClient) operator(group operatorGroup, op, current twapi.Operator) twapi.Operator {
	switch twapi.Operator(strings.ToUpper(string(op))) {
	case twapi.OperatorOr:
		b.opErrs[group] = nil

		return twapi.OperatorOr
	case twapi.OperatorAnd, "AND":
		b.opErrs[group] = nil

		return twapi.OperatorAnd
	default:
		b.opErrs[group] = &twapi.ValidationError{Field: "operator", Err: twapi.ErrInvalidOperator}

		return current
	}
}

func (b *TweetSearchClient) plan() (plan, error) {
	for _, err := range b.opErrs {
		if err != nil {
			return plan{}, err
		}
	}

	return plan{
		path:     "tweets/search/recent",
		route:    "tweets/search/recent",
		method:   http.MethodGet,
		auth:     twapi.AuthBearer,
		decorate: b.decorate,
	}, nil
}

func (b *TweetSearchClient) decorate(q *endpoint.Query) error {
	if len(b.keywords) == 0 && len(b.from) == 0 && len(b.to) == 0 && b.conversation == "" {
		return &twapi.ValidationError{Field: "query", Err: twapi.ErrMissingFilter}
	}

	var expr strings.Builder

	if len(b.keywords) > 0 {
		groups := make([]string, 0, len(b.keywords))
		for _, keyword := range b.keywords {
			escaped := endpoint.Escape(keyword)
			groups = append(groups, `("`+escaped+`"%20OR%20%23`+escaped+`)`)
		}

		joined := strings.Join(groups, joiner(b.keywordOp))
		if len(groups) > 1 {
			joined = "(" + joined + ")"
		}

		expr.WriteString(joined)
	}

	if len(b.from) > 0 {
		expr.WriteString("%20" + group("from:", b.from, b.fromOp))
	}

	if len(b.to) > 0 {
		expr.WriteString("%20" + group("to:", b.to, b.toOp))
	}

	if b.conversation != "" {
		expr.WriteString("%20conversation_id:" + endpoint.Escape(b.conversation))
	}

	if len(b.locales) > 0 {
		expr.WriteString("%20" + group("lang:", b.locales, twapi.OperatorOr))
	}

	if b.onlyMedia {
		expr.WriteString("%20has:media")
	}

	q.AddRaw("query=" + expr.String())

	if b.maxResults > 0 {
		q.AddRaw("max_results=" + strconv.Itoa(b.maxResults))
	}

	if b.metrics {
		q.AddRaw(constants.SearchMetricsFields)
	}

	if b.userDetails {
		q.AddRaw(constants.SearchUserDetailsFields)
	}

	if b.mediaDetails {
		q.AddRaw(constants.SearchMediaDetailsFields)
	}

	return nil
}

// joiner renders op between terms; AND is juxtaposition, so it leaves two spaces.
func joiner(op twapi.Operator) string {
	return "%20" + string(op) + "%20"
}

// group renders (prefix+a OP prefix+b ...).
func group(prefix string, values []string, op twapi.Operator) string {
	terms := make([]string, 0, len(values))
	for _, value := range values {
		terms = append(terms, prefix+endpoint.Escape(value))
	}

	return "(" + strings.Join(terms, joiner(op)) + ")"
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}

	return out
}
