package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/PoluyanbIch/quizbot/internal/service"
	"github.com/google/uuid"
)

const leaderboardSize = 10

// Inbound is a text message from a user.
type Inbound struct {
	UserID    int64
	Username  string
	FirstName string
	Text      string
}

// Sender delivers replies to a user.
type Sender interface {
	Send(ctx context.Context, userID int64, reply Reply) error
}

// Dispatcher runs inbound messages through the Machine. Messages of one user
// are handled in arrival order, one at a time; different users run concurrently.
type Dispatcher struct {
	machine *Machine
	store   Store
	sender  Sender
	board   service.LeaderboardService
	logger  *slog.Logger

	mu     sync.Mutex
	queues map[int64][]Inbound
	wg     sync.WaitGroup
}

func NewDispatcher(machine *Machine, store Store, sender Sender, board service.LeaderboardService, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		machine: machine,
		store:   store,
		sender:  sender,
		board:   board,
		logger:  logger,
		queues:  make(map[int64][]Inbound),
	}
}

// Dispatch queues the message and returns immediately.
func (d *Dispatcher) Dispatch(ctx context.Context, in Inbound) {
	d.mu.Lock()
	q, running := d.queues[in.UserID]
	d.queues[in.UserID] = append(q, in)
	if running {
		d.mu.Unlock()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go d.drain(ctx, in.UserID)
}

// drain handles the user's queue until it is empty. The queue entry exists
// exactly while a drain goroutine for the user is running.
func (d *Dispatcher) drain(ctx context.Context, userID int64) {
	defer d.wg.Done()

	for {
		d.mu.Lock()
		q := d.queues[userID]
		if len(q) == 0 {
			delete(d.queues, userID)
			d.mu.Unlock()
			return
		}
		in := q[0]
		d.queues[userID] = q[1:]
		d.mu.Unlock()

		d.Handle(ctx, in)
	}
}

// Wait blocks until every queued message has been handled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Handle processes one message synchronously. Callers must not run Handle
// concurrently for the same user; Dispatch takes care of that.
func (d *Dispatcher) Handle(ctx context.Context, in Inbound) {
	logger := d.logger.With("user_id", in.UserID, "trace_id", uuid.Must(uuid.NewV7()).String())
	logger.Debug("message received", "text", in.Text)

	if strings.TrimSpace(in.Text) == CommandTop {
		d.sendTop(ctx, logger, in.UserID)
		return
	}

	current, _ := d.store.Get(in.UserID)
	out := d.machine.Transition(current, in.Text)

	if out.Session == nil {
		d.store.Delete(in.UserID)
	} else {
		d.store.Set(in.UserID, out.Session)
	}

	if out.Err != nil {
		level := slog.LevelDebug
		if !errors.Is(out.Err, ErrOutOfRange) && !errors.Is(out.Err, ErrNoActiveSession) && !errors.Is(out.Err, service.ErrMalformedSubmission) {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "message not accepted", "error", out.Err)
	}
	if out.Session != nil {
		logger.Debug("session updated", "phase", out.Session.Phase.String(), "cursor", out.Session.Cursor, "score", out.Session.Score)
	}

	d.send(ctx, logger, in.UserID, out.Replies...)

	if out.Completed != nil {
		logger.Info("quiz finished", "set", out.Completed.SetName, "score", out.Completed.Score, "total", out.Completed.Total)
		d.record(ctx, logger, in, out.Completed)
	}
}

func (d *Dispatcher) send(ctx context.Context, logger *slog.Logger, userID int64, replies ...Reply) {
	for _, reply := range replies {
		if err := d.sender.Send(ctx, userID, reply); err != nil {
			logger.Error("failed to send reply", "error", err)
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, logger *slog.Logger, in Inbound, result *Result) {
	if d.board == nil || result.Total == 0 {
		return
	}

	best, err := d.board.AddEntry(ctx, in.UserID, in.Username, in.FirstName, result.Score, result.Total)
	if err != nil {
		logger.Error("failed to record result", "error", err)
		return
	}
	if !best {
		return
	}

	position, _, err := d.board.GetUserPosition(ctx, in.UserID)
	if err != nil {
		logger.Error("failed to read leaderboard position", "error", err)
		return
	}
	if position != -1 {
		d.send(ctx, logger, in.UserID, Reply{Text: d.machine.Messages().NewRecord(position)})
	}
}

func (d *Dispatcher) sendTop(ctx context.Context, logger *slog.Logger, userID int64) {
	if d.board == nil {
		return
	}

	top, err := d.board.GetTop(ctx, leaderboardSize)
	if err != nil {
		logger.Error("failed to load leaderboard", "error", err)
		return
	}
	d.send(ctx, logger, userID, Reply{Text: d.machine.Messages().Leaderboard(top)})
}
