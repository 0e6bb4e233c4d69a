// Package router serves live components over HTTP and WebSocket.
//
// A live route answers three kinds of request on the same path:
//
//   - GET renders the component as a full page through the Layout.
//   - A WebSocket upgrade runs a message loop: phx_join mounts, user events
//     are dispatched to HandleEvent and answered with a render push.
//   - POST with an _event form field dispatches the same event without
//     JavaScript and redirects back (post/redirect/get).
//
// Visitors are identified by a UUID cookie. Components implementing
// state.Snapshotter keep their state between requests in a state.StateManager.
package router

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"html"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
	"github.com/gabrielmiguelok/healthpredictor/pkg/logging"
	"github.com/gabrielmiguelok/healthpredictor/pkg/security"
	"github.com/gabrielmiguelok/healthpredictor/pkg/state"
	"github.com/gabrielmiguelok/healthpredictor/pkg/transport"
)

// Router errors.
var (
	ErrMissingEvent     = errors.New("missing _event field")
	ErrRouterShutdown   = errors.New("router is shut down")
	ErrNotJoined        = errors.New("event before phx_join")
	ErrEventTimeout     = errors.New("event handler timed out")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Protocol event names.
const (
	EventJoin      = "phx_join"
	EventLeave     = "phx_leave"
	EventReply     = "phx_reply"
	EventHeartbeat = "heartbeat"
	EventRender    = "render"
	EventRedirect  = "redirect"

	// FormEventField names the form input that carries the event on the
	// no-JS path. Its value is "event" or "event:value".
	FormEventField = "_event"

	// RootID is the element id of the live root the client swaps.
	RootID = "lv-root"
)

const lockStripes = 64

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Page is a rendered live view handed to a Layout.
type Page struct {
	Path      string
	Component string
	CSRFToken string

	// Body is the component markup already wrapped in the live root.
	Body []byte
}

// Layout writes a full document around a page.
type Layout func(ctx context.Context, w io.Writer, page Page) error

// LiveRoute is a path served by a live component.
type LiveRoute struct {
	Path       string
	Component  func() core.Component
	Layout     Layout
	Middleware []Middleware
	Meta       map[string]any
}

// RouteOption configures a LiveRoute.
type RouteOption func(*LiveRoute)

// WithRouteLayout overrides the router layout for one route.
func WithRouteLayout(l Layout) RouteOption {
	return func(r *LiveRoute) {
		r.Layout = l
	}
}

// WithRouteMiddleware adds middleware that runs only for this route.
func WithRouteMiddleware(mw ...Middleware) RouteOption {
	return func(r *LiveRoute) {
		r.Middleware = append(r.Middleware, mw...)
	}
}

// WithMeta attaches metadata to the route.
func WithMeta(key string, value any) RouteOption {
	return func(r *LiveRoute) {
		r.Meta[key] = value
	}
}

// Router routes plain and live requests.
type Router struct {
	mux        *http.ServeMux
	liveRoutes map[string]*LiveRoute
	middleware []Middleware
	registry   *core.ComponentRegistry

	sessions *LiveViewSessionManager
	sockets  *core.SocketManager
	states   *state.StateManager
	csrf     *security.CSRFProtection

	logger        logging.Logger
	errorHandler  ErrorHandler
	layout        Layout
	transportCfg  transport.Config
	sessionCfg    core.SessionConfig
	timeouts      core.TimeoutConfig
	secureCookies bool

	// Serialises fallback requests of the same visitor.
	locks [lockStripes]sync.Mutex

	stopCleanup context.CancelFunc
	closed      bool

	mu sync.RWMutex
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// WithStateManager enables per-visitor component snapshots.
func WithStateManager(sm *state.StateManager) Option {
	return func(r *Router) {
		r.states = sm
	}
}

// WithCSRF enables token checks on fallback POSTs.
func WithCSRF(c *security.CSRFProtection) Option {
	return func(r *Router) {
		r.csrf = c
	}
}

// WithTransportConfig sets WebSocket limits and origin policy.
func WithTransportConfig(cfg transport.Config) Option {
	return func(r *Router) {
		r.transportCfg = cfg
	}
}

// WithSessionConfig sets the visitor cookie and live session limits.
func WithSessionConfig(cfg core.SessionConfig) Option {
	return func(r *Router) {
		r.sessionCfg = cfg
	}
}

// WithTimeouts sets the mount and event deadlines.
func WithTimeouts(cfg core.TimeoutConfig) Option {
	return func(r *Router) {
		r.timeouts = cfg
	}
}

// WithLayout sets the document layout for live pages.
func WithLayout(l Layout) Option {
	return func(r *Router) {
		r.layout = l
	}
}

// WithErrorHandler replaces the default error response.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Router) {
		r.errorHandler = h
	}
}

// WithSecureCookies marks the visitor cookie Secure.
func WithSecureCookies(secure bool) Option {
	return func(r *Router) {
		r.secureCookies = secure
	}
}

// New creates a router and starts its live session janitor.
func New(opts ...Option) *Router {
	r := &Router{
		mux:          http.NewServeMux(),
		liveRoutes:   make(map[string]*LiveRoute),
		registry:     core.NewComponentRegistry(),
		sockets:      core.NewSocketManager(),
		logger:       logging.NopLogger{},
		layout:       DefaultLayout,
		transportCfg: transport.DefaultConfig(),
		sessionCfg:   core.DefaultSessionConfig(),
		timeouts:     core.DefaultTimeoutConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.errorHandler == nil {
		r.errorHandler = r.defaultErrorHandler
	}
	if r.transportCfg.Logger == nil {
		r.transportCfg.Logger = r.logger
	}

	r.sessions = NewLiveViewSessionManager(SessionManagerConfig{
		MaxSessions: r.sessionCfg.MaxSessions,
		TTL:         r.sessionCfg.TTL,
	})

	ctx, cancel := context.WithCancel(context.Background())
	r.stopCleanup = cancel
	interval := r.sessionCfg.CleanupInterval
	if interval <= 0 {
		interval = core.DefaultSessionConfig().CleanupInterval
	}
	r.sessions.StartCleanup(ctx, interval)

	return r
}

// Use appends global middleware. It applies to every route, including
// routes registered earlier.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// Registry returns the live components by route path.
func (r *Router) Registry() *core.ComponentRegistry {
	return r.registry
}

// Sessions returns the live session manager.
func (r *Router) Sessions() *LiveViewSessionManager {
	return r.sessions
}

// Sockets returns the socket manager.
func (r *Router) Sockets() *core.SocketManager {
	return r.sockets
}

// Live registers a live component at pattern.
func (r *Router) Live(pattern string, component func() core.Component, opts ...RouteOption) {
	route := &LiveRoute{
		Path:      pattern,
		Component: component,
		Meta:      make(map[string]any),
	}
	for _, opt := range opts {
		opt(route)
	}

	r.mu.Lock()
	r.liveRoutes[pattern] = route
	r.mu.Unlock()
	r.registry.Register(pattern, component)

	r.mux.Handle(pattern, Chain(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.serveLive(w, req, route)
	}), route.Middleware...))
}

// Handle registers a plain handler.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers a plain handler function.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.Handle(pattern, handler)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	mw := make([]Middleware, len(r.middleware))
	copy(mw, r.middleware)
	r.mu.RUnlock()

	Chain(r.mux, mw...).ServeHTTP(w, req)
}

// Shutdown terminates live sessions and closes their sockets.
func (r *Router) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.stopCleanup()

	var errs []error
	for _, s := range r.sessions.All() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.terminate(ctx, core.TerminateShutdown); err != nil {
			errs = append(errs, fmt.Errorf("terminate %s: %w", s.SocketID, err))
		}
		r.sessions.Remove(s.SocketID)
	}
	if err := r.sockets.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (r *Router) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

func (r *Router) serveLive(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	switch {
	case isWebSocketRequest(req):
		r.serveWebSocket(w, req, route)
	case req.Method == http.MethodGet || req.Method == http.MethodHead:
		r.servePage(w, req, route)
	case req.Method == http.MethodPost:
		r.serveEvent(w, req, route)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, ErrMethodNotAllowed.Error(), http.StatusMethodNotAllowed)
	}
}

// servePage renders the component as a full document.
func (r *Router) servePage(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	ctx := req.Context()
	visitor := r.visitorID(w, req)

	session, err := r.newSession(visitor)
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}

	comp, err := r.mount(ctx, route, extractParams(req), session, visitor)
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}
	defer comp.Terminate(ctx, core.TerminateNormal)

	var body bytes.Buffer
	if err := renderRoot(ctx, &body, req.URL.Path, comp); err != nil {
		r.errorHandler(w, req, err)
		return
	}

	layout := r.layout
	if route.Layout != nil {
		layout = route.Layout
	}
	var doc bytes.Buffer
	if err := layout(ctx, &doc, Page{
		Path:      req.URL.Path,
		Component: comp.Name(),
		CSRFToken: session.GetString(core.SessionKeyCSRFToken),
		Body:      body.Bytes(),
	}); err != nil {
		r.errorHandler(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if req.Method == http.MethodHead {
		return
	}
	w.Write(doc.Bytes())
}

// serveEvent is the no-JS path: dispatch one form event, save state and
// redirect back.
func (r *Router) serveEvent(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	ctx := req.Context()
	visitor := r.visitorID(w, req)

	if err := req.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if r.csrf != nil {
		if err := r.csrf.ValidateToken(r.csrf.TokenFromRequest(req), visitor); err != nil {
			logging.L(ctx).Warn("fallback event rejected", logging.Err(err))
			http.Error(w, "Forbidden - Invalid CSRF Token", http.StatusForbidden)
			return
		}
	}

	event, payload, err := formEvent(req, r.csrfField())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lock := r.lockFor(visitor)
	lock.Lock()
	defer lock.Unlock()

	session, err := r.newSession(visitor)
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}
	comp, err := r.mount(ctx, route, extractParams(req), session, visitor)
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}
	defer comp.Terminate(ctx, core.TerminateNormal)

	if err := r.dispatch(ctx, comp, event, payload); err != nil {
		logging.L(ctx).Warn("fallback event failed",
			logging.String("event", event),
			logging.Err(err),
		)
	}
	r.save(ctx, visitor, comp)

	target := req.URL.Path
	if nav, ok := comp.(core.Navigator); ok {
		if to := nav.NavigateTo(); to != "" {
			target = to
		}
	}
	http.Redirect(w, req, target, http.StatusSeeOther)
}

// serveWebSocket upgrades the request and starts the message loop.
func (r *Router) serveWebSocket(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	if r.isClosed() {
		http.Error(w, ErrRouterShutdown.Error(), http.StatusServiceUnavailable)
		return
	}

	visitor := r.cookieVisitor(req)
	if visitor == "" {
		visitor = uuid.NewString()
	}
	session, err := r.newSession(visitor)
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}

	ws, err := transport.Accept(w, req, r.transportCfg)
	if err != nil {
		logging.L(req.Context()).Warn("websocket upgrade failed", logging.Err(err))
		return
	}

	socket := core.NewSocket(uuid.NewString(), newTransportAdapter(ws))
	if err := r.sockets.Add(socket); err != nil {
		ws.Close()
		return
	}

	comp := route.Component()
	if s, ok := comp.(interface{ SetSocket(*core.Socket) }); ok {
		s.SetSocket(socket)
	}

	ctx, cancel := context.WithCancel(context.Background())
	lv := &LiveViewSession{
		SocketID:  socket.ID(),
		VisitorID: visitor,
		Component: comp,
		Socket:    socket,
		Transport: ws,
		Params:    extractParams(req),
		Session:   session,
		cancel:    cancel,
	}
	if evicted := r.sessions.Add(lv); evicted != nil {
		evicted.terminate(context.Background(), core.TerminateTimeout)
		r.sockets.Remove(evicted.SocketID)
	}

	logger := r.logger.With(
		logging.String("socket_id", socket.ID()),
		logging.String("component", comp.Name()),
	)
	logger.Debug("live socket connected")

	go r.messageLoop(logging.ContextWithLogger(ctx, logger), lv)
}

func (r *Router) messageLoop(ctx context.Context, lv *LiveViewSession) {
	defer r.disconnect(lv, core.TerminateNormal)

	recv := lv.Transport.Receive()
	for {
		select {
		case msg, ok := <-recv:
			if !ok {
				return
			}
			lv.Touch()
			lv.Socket.UpdateActivity()

			switch msg.Event {
			case EventHeartbeat, "phx_heartbeat":
				r.reply(lv, msg, "ok", nil)
			case EventJoin:
				r.handleJoin(ctx, lv, msg)
			case EventLeave:
				r.reply(lv, msg, "ok", nil)
				return
			default:
				r.handleEvent(ctx, lv, msg)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (r *Router) handleJoin(ctx context.Context, lv *LiveViewSession, msg transport.Message) {
	if !lv.Mounted() {
		mctx, cancel := r.mountContext(ctx, lv.Socket, lv.Session, lv.Params)
		defer cancel()
		if err := lv.Component.Mount(mctx, lv.Params, lv.Session); err != nil {
			r.replyError(ctx, lv, msg, err)
			return
		}
		r.restore(mctx, lv.VisitorID, lv.Component)
		lv.setMounted()
	}

	markup, err := renderString(ctx, lv.Component)
	if err != nil {
		r.replyError(ctx, lv, msg, err)
		return
	}
	drainChanges(lv.Component)
	r.reply(lv, msg, "ok", map[string]any{"html": markup})
}

func (r *Router) handleEvent(ctx context.Context, lv *LiveViewSession, msg transport.Message) {
	if !lv.Mounted() {
		r.replyError(ctx, lv, msg, ErrNotJoined)
		return
	}

	ectx := core.BuildContext(ctx, lv.Socket, lv.Session, lv.Params)
	if err := r.dispatch(ectx, lv.Component, msg.Event, msg.Payload); err != nil {
		r.replyError(ctx, lv, msg, err)
		return
	}
	r.save(ctx, lv.VisitorID, lv.Component)

	markup, err := renderString(ctx, lv.Component)
	if err != nil {
		r.replyError(ctx, lv, msg, err)
		return
	}
	changed := drainChanges(lv.Component)
	if changed == nil {
		changed = []string{}
	}
	if err := lv.Socket.Send(core.Message{
		Ref:     msg.Ref,
		Topic:   lv.Socket.Topic(),
		Event:   EventRender,
		Payload: map[string]any{"html": markup, "changed": changed},
	}); err != nil {
		logging.L(ctx).Debug("render push failed", logging.Err(err))
	}
}

func (r *Router) disconnect(lv *LiveViewSession, reason core.TerminateReason) {
	if err := lv.terminate(context.Background(), reason); err != nil {
		r.logger.Warn("component terminate failed",
			logging.String("socket_id", lv.SocketID),
			logging.Err(err),
		)
	}
	r.sessions.Remove(lv.SocketID)
	r.sockets.Remove(lv.SocketID)
	r.logger.Debug("live socket closed", logging.String("socket_id", lv.SocketID))
}

func (r *Router) reply(lv *LiveViewSession, msg transport.Message, status string, response map[string]any) {
	if response == nil {
		response = map[string]any{}
	}
	lv.Socket.Send(core.Message{
		Ref:     msg.Ref,
		Topic:   msg.Topic,
		Event:   EventReply,
		Payload: map[string]any{"status": status, "response": response},
	})
}

func (r *Router) replyError(ctx context.Context, lv *LiveViewSession, msg transport.Message, err error) {
	logging.L(ctx).Warn("live event failed",
		logging.String("event", msg.Event),
		logging.Err(err),
	)
	r.reply(lv, msg, "error", map[string]any{"reason": err.Error()})
}

// mount creates, mounts and restores a component for one HTTP request.
func (r *Router) mount(ctx context.Context, route *LiveRoute, params core.Params, session core.Session, visitor string) (core.Component, error) {
	comp := route.Component()
	mctx, cancel := r.mountContext(ctx, nil, session, params)
	defer cancel()
	if err := comp.Mount(mctx, params, session); err != nil {
		return nil, fmt.Errorf("mount %s: %w", comp.Name(), err)
	}
	r.restore(mctx, visitor, comp)
	return comp, nil
}

func (r *Router) mountContext(ctx context.Context, socket *core.Socket, session core.Session, params core.Params) (context.Context, context.CancelFunc) {
	ctx = core.BuildContext(ctx, socket, session, params)
	if r.timeouts.ComponentMount > 0 {
		return context.WithTimeout(ctx, r.timeouts.ComponentMount)
	}
	return context.WithCancel(ctx)
}

// dispatch runs HandleEvent under the event deadline.
func (r *Router) dispatch(ctx context.Context, comp core.Component, event string, payload map[string]any) error {
	if payload == nil {
		payload = make(map[string]any)
	}
	if r.timeouts.ComponentEvent > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeouts.ComponentEvent)
		defer cancel()
	}
	if err := comp.HandleEvent(ctx, event, payload); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrEventTimeout, event)
		}
		return err
	}
	return nil
}

func (r *Router) restore(ctx context.Context, visitor string, comp core.Component) {
	snap, ok := comp.(state.Snapshotter)
	if !ok || r.states == nil {
		return
	}
	if _, err := r.states.Restore(ctx, visitor, comp.Name(), snap); err != nil {
		logging.L(ctx).Warn("discarding saved state",
			logging.String("component", comp.Name()),
			logging.Err(err),
		)
		r.states.Delete(ctx, visitor, comp.Name())
	}
}

func (r *Router) save(ctx context.Context, visitor string, comp core.Component) {
	snap, ok := comp.(state.Snapshotter)
	if !ok || r.states == nil {
		return
	}
	if err := r.states.Save(ctx, visitor, comp.Name(), snap); err != nil {
		logging.L(ctx).Error("saving component state failed",
			logging.String("component", comp.Name()),
			logging.Err(err),
		)
	}
}

// newSession builds the values passed to Mount.
func (r *Router) newSession(visitor string) (core.Session, error) {
	session := core.Session{core.SessionKeyID: visitor}
	if r.csrf != nil {
		token, err := r.csrf.GenerateToken(visitor)
		if err != nil {
			return nil, err
		}
		session[core.SessionKeyCSRFToken] = token
	}
	return session, nil
}

func (r *Router) csrfField() string {
	if r.csrf == nil {
		return ""
	}
	return r.csrf.FormField()
}

// visitorID returns the visitor cookie, issuing a new one when missing or
// malformed.
func (r *Router) visitorID(w http.ResponseWriter, req *http.Request) string {
	if id := r.cookieVisitor(req); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     r.sessionCfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(r.sessionCfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   r.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (r *Router) cookieVisitor(req *http.Request) string {
	c, err := req.Cookie(r.sessionCfg.CookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

func (r *Router) lockFor(visitor string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(visitor))
	return &r.locks[h.Sum32()%lockStripes]
}

func (r *Router) defaultErrorHandler(w http.ResponseWriter, req *http.Request, err error) {
	logging.L(req.Context()).Error("request failed", logging.Err(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// formEvent reads the event name and payload from a parsed form. The
// event field and CSRF field are not part of the payload; the part after
// ':' in "event:value" is passed as payload["value"].
func formEvent(req *http.Request, csrfField string) (string, map[string]any, error) {
	raw := strings.TrimSpace(req.PostForm.Get(FormEventField))
	if raw == "" {
		return "", nil, ErrMissingEvent
	}

	payload := make(map[string]any, len(req.PostForm))
	for key, values := range req.PostForm {
		if key == FormEventField || key == csrfField || len(values) == 0 {
			continue
		}
		payload[key] = values[0]
	}

	event, value, ok := strings.Cut(raw, ":")
	if ok {
		payload["value"] = value
	}
	return event, payload, nil
}

func renderRoot(ctx context.Context, w io.Writer, path string, comp core.Component) error {
	renderer := comp.Render(ctx)
	if renderer == nil {
		return ErrNilRenderer
	}
	fmt.Fprintf(w, `<div id="%s" data-live-view="%s" data-live-path="%s">`,
		RootID, html.EscapeString(comp.Name()), html.EscapeString(path))
	if err := renderer.Render(ctx, w); err != nil {
		return fmt.Errorf("render %s: %w", comp.Name(), err)
	}
	_, err := io.WriteString(w, `</div>`)
	return err
}

func renderString(ctx context.Context, comp core.Component) (string, error) {
	renderer := comp.Render(ctx)
	if renderer == nil {
		return "", ErrNilRenderer
	}
	var buf bytes.Buffer
	if err := renderer.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", comp.Name(), err)
	}
	return buf.String(), nil
}

// drainChanges returns the assign keys changed since the last render.
func drainChanges(comp core.Component) []string {
	a, ok := comp.(interface{ Assigns() *core.Assigns })
	if !ok {
		return nil
	}
	return a.Assigns().Tracker().Drain()
}

func extractParams(req *http.Request) core.Params {
	params := make(core.Params)
	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func isWebSocketRequest(req *http.Request) bool {
	return strings.EqualFold(req.Header.Get("Upgrade"), "websocket")
}

// DefaultLayout writes a bare document around the page.
func DefaultLayout(ctx context.Context, w io.Writer, page Page) error {
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>%s</body></html>",
		html.EscapeString(page.Component), page.Body)
	return err
}
