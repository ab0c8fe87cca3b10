package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"github.com/theabolton/todo-graphql-api/pkg/respond"
)

type GraphQLHandler struct {
	schema *graphql.Schema
	logger *zap.Logger
}

func NewGraphQLHandler(schema *graphql.Schema, logger *zap.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema: schema,
		logger: logger,
	}
}

// graphQLRequest - стандартный конверт GraphQL-over-HTTP
type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (h *GraphQLHandler) Query(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, http.StatusBadRequest, "empty request body")
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode graphql request", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	// Ошибки исполнения (в т.ч. not found и валидация) уезжают клиенту
	// внутри GraphQL-ответа, HTTP при этом всегда 200
	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	for _, qerr := range resp.Errors {
		h.logger.Warn("graphql error", zap.String("message", qerr.Message))
	}

	respond.JSON(w, http.StatusOK, resp)
}

// Explorer отдает страницу GraphiQL, указывающую на этот же endpoint
func (h *GraphQLHandler) Explorer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(graphiqlPage)
}

var graphiqlPage = []byte(`<!DOCTYPE html>
<html>
<head>
	<title>Todo GraphQL</title>
	<style>
		body { margin: 0; }
		#graphiql { height: 100vh; }
	</style>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphiql@3/graphiql.min.css" />
</head>
<body>
	<div id="graphiql">Loading...</div>
	<script src="https://cdn.jsdelivr.net/npm/react@18/umd/react.production.min.js"></script>
	<script src="https://cdn.jsdelivr.net/npm/react-dom@18/umd/react-dom.production.min.js"></script>
	<script src="https://cdn.jsdelivr.net/npm/graphiql@3/graphiql.min.js"></script>
	<script>
		const root = ReactDOM.createRoot(document.getElementById('graphiql'));
		root.render(React.createElement(GraphiQL, {
			fetcher: GraphiQL.createFetcher({ url: '/graphql' }),
		}));
	</script>
</body>
</html>
`)
