package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/simplecontainer/sapha/pkg/metrics"
	"github.com/simplecontainer/sapha/pkg/static"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
)

func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		Engine:   gin.New(),
		Logger:   logger,
		handlers: make(map[string]Handler),
	}

	server.Engine.Use(gin.Recovery())
	server.Engine.POST(static.RPC_PATH, server.dispatch)
	server.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return server
}

func (server *Server) Handle(method string, handler Handler) {
	server.lock.Lock()
	defer server.lock.Unlock()

	server.handlers[method] = handler
}

func (server *Server) handler(method string) (Handler, bool) {
	server.lock.Lock()
	defer server.lock.Unlock()

	handler, ok := server.handlers[method]
	return handler, ok
}

// Serve accepts at most RPC_MAX_CONNECTIONS concurrent connections on ln.
func (server *Server) Serve(ln net.Listener) error {
	server.lock.Lock()
	server.http = &http.Server{Handler: server.Engine}
	httpServer := server.http
	server.lock.Unlock()

	err := httpServer.Serve(netutil.LimitListener(ln, static.RPC_MAX_CONNECTIONS))

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (server *Server) ListenAndServe(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))

	if err != nil {
		return err
	}

	server.Logger.Info("rpc server listening", zap.String("address", ln.Addr().String()))

	return server.Serve(ln)
}

func (server *Server) Shutdown(ctx context.Context) error {
	server.lock.Lock()
	httpServer := server.http
	server.lock.Unlock()

	if httpServer == nil {
		return nil
	}

	return httpServer.Shutdown(ctx)
}

func (server *Server) dispatch(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)

	request := Request{}

	if err == nil {
		err = json.Unmarshal(data, &request)
	}

	if err != nil || request.Method == "" {
		server.write(c, http.StatusBadRequest, Failed(ERROR_BAD_REQUEST.Error()))
		return
	}

	handler, ok := server.handler(request.Method)

	if !ok {
		server.Logger.Warn("unknown rpc method", zap.String("method", request.Method))
		server.write(c, http.StatusOK, Failed(fmt.Sprintf("%s: %s", ERROR_UNKNOWN_METHOD, request.Method)))
		return
	}

	response := handler(c.Request.Context(), request.Params)
	metrics.RpcCalls.Increment(request.Method, string(response.Status))

	server.Logger.Debug("rpc call served",
		zap.String("method", request.Method),
		zap.String("status", string(response.Status)),
	)

	server.write(c, http.StatusOK, response)
}

func (server *Server) write(c *gin.Context, status int, response Response) {
	data, err := json.Marshal(response)

	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(status, "application/json", data)
}
