package whatsapp

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	waE2E "go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"

	"github.com/exeai/exeai/internal/constants"
	"github.com/exeai/exeai/internal/logger"
)

// Status is the connection state exposed by the API.
type Status string

const (
	StatusClose      Status = "close"
	StatusConnecting Status = "connecting"
	StatusOpen       Status = "open"
)

const reconnectDelay = 3 * time.Second

var ErrNotConnected = errors.New("whatsapp session is not connected")

// StatusInfo is the snapshot returned by the status endpoint.
type StatusInfo struct {
	Status           Status `json:"status"`
	LoggedIn         bool   `json:"logged_in"`
	QRCode           string `json:"qr_code,omitempty"`
	BufferedMessages int    `json:"buffered_messages"`
}

// Manager owns a single WhatsApp socket session: the client, the pending QR
// login challenge, the connection status, and the inbound message buffer.
// Credentials live in the injected sqlstore container, so a restarted process
// reconnects with the same device identity.
type Manager struct {
	mu        sync.Mutex
	container *sqlstore.Container
	log       *logger.Logger

	client    *whatsmeow.Client
	status    Status
	qrCode    string
	reconnect bool

	buffer *MessageBuffer
}

// NewManager creates a Manager over the given credential store.
func NewManager(container *sqlstore.Container, log *logger.Logger) *Manager {
	return &Manager{
		container: container,
		log:       log,
		status:    StatusClose,
		buffer:    NewMessageBuffer(constants.WhatsAppBufferSize),
	}
}

// Connect starts a session. With stored credentials it reconnects directly;
// otherwise it opens a QR login challenge readable via Status.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil && m.client.IsConnected() {
		return nil
	}

	device, err := m.container.GetFirstDevice()
	if err != nil {
		return err
	}

	client := whatsmeow.NewClient(device, waLog.Noop)
	// Reconnect decisions belong to the manager, not the library.
	client.EnableAutoReconnect = false
	client.AddEventHandler(m.handleEvent)

	m.client = client
	m.reconnect = true
	m.status = StatusConnecting
	m.qrCode = ""

	if client.Store.ID == nil {
		// Never paired: the QR channel must be opened before Connect.
		qrChan, err := client.GetQRChannel(ctx)
		if err != nil {
			m.status = StatusClose
			return err
		}
		go m.watchQR(qrChan)
	}

	if err := client.Connect(); err != nil {
		m.status = StatusClose
		return err
	}

	return nil
}

// Disconnect closes the socket but keeps stored credentials.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reconnect = false
	if m.client != nil {
		m.client.Disconnect()
	}
	m.status = StatusClose
	m.qrCode = ""
}

// Logout ends the session server-side and drops stored credentials.
func (m *Manager) Logout() error {
	m.mu.Lock()
	client := m.client
	m.reconnect = false
	m.status = StatusClose
	m.qrCode = ""
	m.mu.Unlock()

	if client == nil {
		return ErrNotConnected
	}

	if err := client.Logout(); err != nil {
		// Server rejected or unreachable; drop local credentials anyway.
		if storeErr := client.Store.Delete(); storeErr != nil {
			m.log.Warnw("failed to delete whatsapp credentials", "error", storeErr)
		}
		return err
	}

	return nil
}

// Shutdown tears the session down at process exit.
func (m *Manager) Shutdown() {
	m.Disconnect()
}

// Status returns a snapshot of the session, including the pending QR
// challenge as a PNG data URL while login is awaited.
func (m *Manager) Status() StatusInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	info := StatusInfo{
		Status:           m.status,
		BufferedMessages: m.buffer.Len(),
	}
	if m.client != nil {
		info.LoggedIn = m.client.Store.ID != nil
	}
	if m.qrCode != "" {
		if png, err := qrcode.Encode(m.qrCode, qrcode.Medium, 256); err == nil {
			info.QRCode = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
		}
	}
	return info
}

// Messages returns the buffered inbound messages, newest first.
func (m *Manager) Messages() []Message {
	return m.buffer.Messages()
}

func (m *Manager) watchQR(ch <-chan whatsmeow.QRChannelItem) {
	for evt := range ch {
		switch evt.Event {
		case "code":
			m.mu.Lock()
			m.qrCode = evt.Code
			m.mu.Unlock()
		case "success":
			m.mu.Lock()
			m.qrCode = ""
			m.mu.Unlock()
		default:
			// timeout or error: the client disconnects on its own
			m.mu.Lock()
			m.qrCode = ""
			m.status = StatusClose
			m.mu.Unlock()
		}
	}
}

func (m *Manager) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Connected:
		m.mu.Lock()
		m.status = StatusOpen
		m.qrCode = ""
		m.mu.Unlock()
		m.log.Infow("whatsapp connected")

	case *events.Message:
		if v.Info.IsFromMe {
			return
		}
		msg := Message{
			ID:        string(v.Info.ID),
			Chat:      v.Info.Chat.String(),
			Sender:    v.Info.Sender.String(),
			PushName:  v.Info.PushName,
			Text:      messageText(v.Message),
			Timestamp: v.Info.Timestamp,
		}
		m.buffer.Add(msg)

	case *events.LoggedOut:
		m.handleLoggedOut()

	case *events.Disconnected:
		m.handleDisconnected()
	}
}

// handleLoggedOut runs when the phone unlinks the session: stored credentials
// are stale, so delete them and stay down.
func (m *Manager) handleLoggedOut() {
	m.mu.Lock()
	m.reconnect = false
	m.status = StatusClose
	m.qrCode = ""
	client := m.client
	m.mu.Unlock()

	m.log.Infow("whatsapp session logged out, deleting credentials")
	if client != nil {
		if err := client.Store.Delete(); err != nil {
			m.log.Warnw("failed to delete whatsapp credentials", "error", err)
		}
	}
}

// handleDisconnected reconnects after transient drops unless the session was
// deliberately closed or logged out.
func (m *Manager) handleDisconnected() {
	m.mu.Lock()
	shouldReconnect := m.reconnect
	if shouldReconnect {
		m.status = StatusConnecting
	} else {
		m.status = StatusClose
	}
	client := m.client
	m.mu.Unlock()

	if !shouldReconnect || client == nil {
		return
	}

	m.log.Infow("whatsapp disconnected, reconnecting", "delay", reconnectDelay)
	go func() {
		time.Sleep(reconnectDelay)

		m.mu.Lock()
		stillWanted := m.reconnect && m.client == client
		m.mu.Unlock()
		if !stillWanted {
			return
		}

		if err := client.Connect(); err != nil {
			m.log.Warnw("whatsapp reconnect failed", "error", err)
			m.mu.Lock()
			m.status = StatusClose
			m.mu.Unlock()
		}
	}()
}

// messageText pulls the displayable text out of the protocol message.
func messageText(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if text := msg.GetConversation(); text != "" {
		return text
	}
	if text := msg.GetExtendedTextMessage().GetText(); text != "" {
		return text
	}
	if caption := msg.GetImageMessage().GetCaption(); caption != "" {
		return caption
	}
	if caption := msg.GetVideoMessage().GetCaption(); caption != "" {
		return caption
	}
	return ""
}
