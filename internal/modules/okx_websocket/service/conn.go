package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ConnState — фаза жизненного цикла соединения.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateClosing
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosing:
		return "closing"
	default:
		return "disconnected"
	}
}

const (
	defaultConnectTimeout = 5 * time.Second
	redialPause           = time.Second
	pingInterval          = 20 * time.Second
)

// session — одна живая ws-сессия. Указатель служит идентичностью:
// колбэки сверяют свою сессию с текущей, устаревшие кадры отбрасываются.
type session struct {
	ws      *websocket.Conn
	writeMu sync.Mutex // gorilla: один писатель на соединение
}

func (s *session) write(b []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.ws.WriteMessage(websocket.TextMessage, b)
}

// Conn держит не больше одной живой сессии на логический endpoint и
// прячет от вызывающих обрывы сети. Все переходы указателя текущей
// сессии — под одним мьютексом.
type Conn struct {
	url    string
	dialer *websocket.Dialer

	onMessage func([]byte)
	onOpen    func()

	mu    sync.Mutex // сериализует establish-последовательность целиком
	cur   *session
	state ConnState
}

func NewConn(url string, connectTimeout time.Duration) *Conn {
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	return &Conn{
		url:    url,
		dialer: &websocket.Dialer{HandshakeTimeout: connectTimeout},
		state:  StateDisconnected,
	}
}

// OnMessage регистрирует единственный обработчик входящих кадров.
// Регистрировать до первого Connect.
func (c *Conn) OnMessage(h func([]byte)) { c.onMessage = h }

// OnOpen вызывается после каждой успешной установки сессии —
// сюда вешается переподписка на каналы.
func (c *Conn) OnOpen(h func()) { c.onOpen = h }

func (c *Conn) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect идемпотентен: живая сессия — сразу выходим. Вся установка под
// mu, двух параллельных подключений быть не может. Таймаут рукопожатия
// ограничен connectTimeout; при неудаче состояние откатывается в
// Disconnected и ошибка отдаётся вызывающему — ретраи на его стороне.
func (c *Conn) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cur != nil {
		return nil
	}
	c.state = StateConnecting
	ws, _, err := c.dialer.Dial(c.url, nil)
	if err != nil {
		c.state = StateDisconnected
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	if c.cur != nil {
		// сюда попасть нельзя: указатель меняется только под mu
		panic("okx_websocket: duplicate live session")
	}

	s := &session{ws: ws}
	c.cur = s
	c.state = StateConnected

	go c.readLoop(s)
	go c.pingLoop(s)
	if c.onOpen != nil {
		// вне mu: обработчик обычно шлёт subscribe через Send
		go c.onOpen()
	}
	return nil
}

// Send подключается при необходимости и пишет в текущую сессию. Если
// сессии нет и после Connect — кадр отбрасывается; гарантии доставки
// обеспечивает слой выше.
func (c *Conn) Send(b []byte) {
	if err := c.Connect(); err != nil {
		log.Printf("[WS] send dropped %s: %v", c.url, err)
		return
	}

	c.mu.Lock()
	s := c.cur
	c.mu.Unlock()
	if s == nil {
		log.Printf("[WS] send dropped %s: no live session", c.url)
		return
	}

	if err := s.write(b); err != nil {
		log.Printf("[WS] write error %s: %v", c.url, err)
		// write error идёт тем же путём, что close/error из read-loop;
		// в горутине, чтобы не блокировать отправителя на redial
		go c.supersede(s)
	}
}

// Reconnect — внешний триггер; no-op, если сессии сейчас нет.
func (c *Conn) Reconnect() {
	c.mu.Lock()
	s := c.cur
	c.mu.Unlock()
	if s == nil {
		return
	}
	c.supersede(s)
}

// readLoop крутится в собственной горутине до close/error транспорта.
// Кадры доставляются, только пока s остаётся текущей сессией.
func (c *Conn) readLoop(s *session) {
	for {
		_, msg, err := s.ws.ReadMessage()
		if err != nil {
			if c.isCurrent(s) {
				log.Printf("[WS] read error %s: %v", c.url, err)
			}
			c.supersede(s)
			return
		}
		if !c.isCurrent(s) {
			// поздний кадр вытесненной сессии
			return
		}
		if h := c.onMessage; h != nil {
			h(msg)
		}
	}
}

// pingLoop держит соединение живым (OKX рвёт молчащие сессии).
func (c *Conn) pingLoop(s *session) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		if !c.isCurrent(s) {
			return
		}
		if err := s.write([]byte("ping")); err != nil {
			return // read-loop заметит обрыв и переподключится
		}
	}
}

func (c *Conn) isCurrent(s *session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur == s
}

// supersede — единственный путь замены сессии: если ссылка всё ещё
// текущая, обнуляем указатель, закрываем транспорт и подключаемся
// заново. Устаревшая сессия воскресить себя не может. Сетевые обрывы
// ретраятся без потолка по числу попыток.
func (c *Conn) supersede(s *session) {
	c.mu.Lock()
	if c.cur != s {
		c.mu.Unlock()
		return
	}
	c.state = StateClosing
	c.cur = nil
	_ = s.ws.Close()
	c.state = StateDisconnected
	c.mu.Unlock()

	for {
		if err := c.Connect(); err == nil {
			return
		}
		log.Printf("[WS] redial %s", c.url)
		time.Sleep(redialPause)
	}
}
