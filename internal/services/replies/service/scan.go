package service

import (
	"context"

	"replyguard/internal/adapters/x"
	"replyguard/internal/platform/logger"
	authdomain "replyguard/internal/services/auth/domain"
	kwdomain "replyguard/internal/services/keywords/domain"
	"replyguard/internal/services/replies/domain"
)

// platform page sizes used by a scan
const (
	mentionsMax = 100
	timelineMax = 20
	searchMax   = 100
)

// ScanPlatform is the read side of the platform client
type ScanPlatform interface {
	Mentions(ctx context.Context, a x.Auth, platformUserID string, max int) (x.Page, error)
	UserTweets(ctx context.Context, a x.Auth, platformUserID string, max int) (x.Page, error)
	SearchConversation(ctx context.Context, a x.Auth, conversationID string, max int) (x.Page, error)
}

// Scanner discovers past replies through mentions and per post conversations
type Scanner struct {
	users    authdomain.UsersPort
	creds    authdomain.CredentialPort
	keywords kwdomain.SourcePort
	platform ScanPlatform
	proc     domain.ProcessorPort
}

// NewScanner wires a Scanner
func NewScanner(users authdomain.UsersPort, creds authdomain.CredentialPort, keywords kwdomain.SourcePort, p ScanPlatform, proc domain.ProcessorPort) *Scanner {
	if users == nil || creds == nil || keywords == nil || p == nil || proc == nil {
		panic("replies.Scanner requires users, credentials, keywords, platform and processor")
	}
	return &Scanner{users: users, creds: creds, keywords: keywords, platform: p, proc: proc}
}

type scanRun struct {
	userID     string
	platformID string
	auth       x.Auth
	res        domain.ScanResult
	log        *logger.Logger
}

// Scan runs both discovery passes for userID
// an unknown user or a missing credential fails the scan, a failing pass only ends that pass
func (s *Scanner) Scan(ctx context.Context, userID string) (domain.ScanResult, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return domain.ScanResult{}, err
	}
	kws, err := s.keywords.ForUser(ctx, userID)
	if err != nil {
		return domain.ScanResult{}, err
	}
	log := logger.C(ctx).With().Str("user_id", userID).Str("x_user_id", u.PlatformID).Logger()
	if len(kws) == 0 {
		log.Debug().Msg("scan skipped, no keywords")
		return domain.ScanResult{}, nil
	}

	cred, err := s.creds.ValidCredential(ctx, userID)
	if err != nil {
		return domain.ScanResult{}, err
	}

	run := &scanRun{
		userID:     userID,
		platformID: u.PlatformID,
		auth:       x.Auth{UserID: userID, AccessToken: cred.AccessToken},
		log:        &log,
	}

	if err := s.mentionsPass(ctx, run); err != nil {
		log.Warn().Err(err).Str("pass", "mentions").Msg("scan pass aborted")
	}
	if err := s.timelinePass(ctx, run); err != nil {
		log.Warn().Err(err).Str("pass", "timeline").Msg("scan pass aborted")
	}

	log.Info().
		Int("tweets_scanned", run.res.TweetsScanned).
		Int("replies_processed", run.res.RepliesProcessed).
		Int("replies_hidden", run.res.RepliesHidden).
		Msg("scan complete")
	return run.res, nil
}

// mentionsPass feeds replies that mention the user, keyed to their conversation root
func (s *Scanner) mentionsPass(ctx context.Context, run *scanRun) error {
	page, err := s.platform.Mentions(ctx, run.auth, run.platformID, mentionsMax)
	if err != nil {
		return err
	}
	for _, m := range page.Data {
		if !m.IsReply() || m.AuthorID == run.platformID {
			continue
		}
		root := m.ConversationID
		if root == "" {
			root = m.ID
		}
		if err := s.feed(ctx, run, m, page, root); err != nil {
			return err
		}
	}
	return nil
}

// timelinePass searches the conversation of each recent post that has replies
func (s *Scanner) timelinePass(ctx context.Context, run *scanRun) error {
	posts, err := s.platform.UserTweets(ctx, run.auth, run.platformID, timelineMax)
	if err != nil {
		return err
	}
	for _, post := range posts.Data {
		run.res.TweetsScanned++
		if post.ReplyCount() == 0 {
			continue
		}
		if err := s.conversation(ctx, run, post.ID); err != nil {
			run.log.Warn().Err(err).Str("pass", "timeline").Str("post_id", post.ID).Msg("conversation skipped")
		}
	}
	return nil
}

func (s *Scanner) conversation(ctx context.Context, run *scanRun, postID string) error {
	page, err := s.platform.SearchConversation(ctx, run.auth, postID, searchMax)
	if err != nil {
		return err
	}
	for _, r := range page.Data {
		if r.AuthorID == run.platformID || r.ID == postID {
			continue
		}
		if err := s.feed(ctx, run, r, page, postID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) feed(ctx context.Context, run *scanRun, t x.Tweet, page x.Page, originalPostID string) error {
	run.res.RepliesProcessed++
	out, err := s.proc.Process(ctx, run.userID, domain.ReplyCandidate{
		ID:              t.ID,
		Text:            t.Text,
		AuthorUsername:  page.Username(t.AuthorID),
		RepliedToPostID: t.RepliedTo(),
		Source:          domain.SourceScan,
	}, originalPostID)
	if err != nil {
		return err
	}
	if out.Hidden {
		run.res.RepliesHidden++
	}
	return nil
}
