package rpc

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Status string

const (
	STATUS_OK      Status = "ok"
	STATUS_PENDING Status = "pending"
	STATUS_FAILED  Status = "failed"
)

type Request struct {
	Method string   `json:"method"`
	Params []string `json:"params"`
}

// Response is a tagged result. Value carries a bool or a string.
type Response struct {
	Status Status `json:"status"`
	Value  any    `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Transport is one live call channel to a peer.
type Transport interface {
	Call(ctx context.Context, method string, params ...string) (Response, error)
	Close() error
}

type Handler func(ctx context.Context, params []string) Response

type Client struct {
	URL  string
	Http *http.Client
}

type Server struct {
	Engine   *gin.Engine
	Logger   *zap.Logger
	handlers map[string]Handler
	http     *http.Server
	lock     sync.Mutex
}
