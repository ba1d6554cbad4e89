package scheduler

import (
	"context"
	"log"
	"time"

	"match-service/internal/models"
	"match-service/internal/observability"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

// Sweep intervals.
const (
	ExpireInterval     = 15 * time.Minute
	ReminderInterval   = 24 * time.Hour
	VerifyInterval     = 30 * time.Minute
	CleanupInterval    = time.Hour
	RedeliverInterval  = 5 * time.Minute
	sweepBatchSize     = 500
	reminderWindow     = 5 * 24 * time.Hour
	unverifiedMaxAge   = 7 * 24 * time.Hour
	deletedRoomMaxAge  = 30 * 24 * time.Hour
	typingIndicatorTTL = 5 * time.Minute
)

// Redeliverer retries undispatched notifications.
type Redeliverer interface {
	Redeliver(ctx context.Context, limit int) (int, error)
}

// Scheduler runs the periodic maintenance sweeps. Every job is idempotent, so
// overlapping runs across restarts or replicas converge on the same state.
type Scheduler struct {
	users       repositories.UserRepository
	matches     repositories.MatchRepository
	rooms       repositories.RoomRepository
	subs        repositories.SubscriptionRepository
	typing      repositories.TypingRepository
	notifier    service.Notifier
	redeliverer Redeliverer
}

// New constructs a Scheduler.
func New(
	users repositories.UserRepository,
	matches repositories.MatchRepository,
	rooms repositories.RoomRepository,
	subs repositories.SubscriptionRepository,
	typing repositories.TypingRepository,
	notifier service.Notifier,
	redeliverer Redeliverer,
) *Scheduler {
	return &Scheduler{
		users:       users,
		matches:     matches,
		rooms:       rooms,
		subs:        subs,
		typing:      typing,
		notifier:    notifier,
		redeliverer: redeliverer,
	}
}

// Run drives the sweeps until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	expire := time.NewTicker(ExpireInterval)
	remind := time.NewTicker(ReminderInterval)
	verify := time.NewTicker(VerifyInterval)
	cleanup := time.NewTicker(CleanupInterval)
	redeliver := time.NewTicker(RedeliverInterval)
	defer expire.Stop()
	defer remind.Stop()
	defer verify.Stop()
	defer cleanup.Stop()
	defer redeliver.Stop()

	log.Printf("scheduler started")
	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduler stopped: %v", ctx.Err())
			return
		case <-expire.C:
			s.runJob(ctx, "expire_chats", s.ExpireChats)
		case <-remind.C:
			s.runJob(ctx, "payment_reminders", s.SendPaymentReminders)
		case <-verify.C:
			s.runJob(ctx, "verify_subscriptions", s.VerifySubscriptions)
		case <-cleanup.C:
			s.runJob(ctx, "cleanup", s.Cleanup)
		case <-redeliver.C:
			s.runJob(ctx, "redeliver_notifications", s.RedeliverNotifications)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, name string, job func(context.Context) (int, error)) {
	count, err := job(ctx)
	if err != nil {
		observability.IncSweepRun(name, "error")
		log.Printf("sweep %s failed after %d items: %v", name, count, err)
		return
	}
	observability.IncSweepRun(name, "ok")
	observability.AddSweepItems(name, count)
	if count > 0 {
		log.Printf("sweep %s processed %d items", name, count)
	}
}

// ExpireChats locks rooms past their expiry and tells both members to pay to
// continue. The lock is a claim: only the run that flips is_locked notifies,
// so overlapping runs that listed the same room notify once.
func (s *Scheduler) ExpireChats(ctx context.Context) (int, error) {
	rooms, err := s.rooms.ListExpiredUnlocked(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		return 0, err
	}
	locked := 0
	for _, room := range rooms {
		claimed, err := s.rooms.ClaimLock(ctx, room.ID)
		if err != nil {
			log.Printf("lock expired room %s: %v", room.ID, err)
			continue
		}
		if !claimed {
			continue
		}
		locked++
		roomID := room.ID
		for _, userID := range []string{room.UserAID, room.UserBID} {
			s.notifier.Notify(ctx, userID, models.NotificationChatExpiring,
				"Chat Locked", "Your chat has expired. Subscribe to continue the conversation!", &roomID)
		}
	}
	return locked, nil
}

// SendPaymentReminders warns members of rooms expiring soon. The repository
// skips rooms that already carry a payment_reminder notification, so each room
// reminds at most once.
func (s *Scheduler) SendPaymentReminders(ctx context.Context) (int, error) {
	rooms, err := s.rooms.ListExpiringWithoutReminder(ctx, time.Now(), reminderWindow, sweepBatchSize)
	if err != nil {
		return 0, err
	}
	for _, room := range rooms {
		roomID := room.ID
		for _, userID := range []string{room.UserAID, room.UserBID} {
			s.notifier.Notify(ctx, userID, models.NotificationPaymentReminder,
				"Chat Expiring Soon", "Your chat expires soon. Subscribe now to keep the conversation going!", &roomID)
		}
	}
	return len(rooms), nil
}

// VerifySubscriptions expires lapsed successful subscriptions and re-locks
// their rooms.
func (s *Scheduler) VerifySubscriptions(ctx context.Context) (int, error) {
	subs, err := s.subs.ListExpiredSuccess(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, sub := range subs {
		if err := s.subs.MarkExpired(ctx, sub.ID); err != nil {
			log.Printf("expire subscription %s: %v", sub.ID, err)
			continue
		}
		expired++
		if err := s.rooms.SetLocked(ctx, sub.ChatRoomID, true); err != nil {
			log.Printf("lock room %s for lapsed subscription %s: %v", sub.ChatRoomID, sub.ID, err)
		}
	}
	return expired, nil
}

// Cleanup removes data past its retention: unverified accounts, expired
// matches (with their orphaned rooms), long-deleted rooms and stale typing
// indicators.
func (s *Scheduler) Cleanup(ctx context.Context) (int, error) {
	now := time.Now()
	total := 0

	removed, err := s.users.DeleteUnverifiedBefore(ctx, now.Add(-unverifiedMaxAge))
	if err != nil {
		log.Printf("cleanup unverified users: %v", err)
	}
	total += int(removed)

	expired, err := s.matches.ListExpired(ctx, now, sweepBatchSize)
	if err != nil {
		log.Printf("cleanup list expired matches: %v", err)
	}
	for _, match := range expired {
		if err := s.matches.DeleteMatch(ctx, match.ID); err != nil {
			log.Printf("cleanup delete match %s: %v", match.ID, err)
			continue
		}
		total++
	}

	purged, err := s.rooms.PurgeDeletedBefore(ctx, now.Add(-deletedRoomMaxAge))
	if err != nil {
		log.Printf("cleanup purge rooms: %v", err)
	}
	total += int(purged)

	stale, err := s.typing.DeleteStale(ctx, now.Add(-typingIndicatorTTL))
	if err != nil {
		log.Printf("cleanup stale typing indicators: %v", err)
	}
	total += int(stale)

	return total, nil
}

// RedeliverNotifications republishes rows a previous publish attempt missed.
func (s *Scheduler) RedeliverNotifications(ctx context.Context) (int, error) {
	return s.redeliverer.Redeliver(ctx, sweepBatchSize)
}
