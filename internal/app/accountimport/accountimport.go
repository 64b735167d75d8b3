// Package accountimport registers parsed account batches through the
// identity gateway, one account at a time, so a single failure never stops
// the rest of the batch.
package accountimport

import (
	"context"

	"github.com/lessonhub-app/lessonhub/internal/app/system/accountfile"
	"github.com/lessonhub-app/lessonhub/internal/app/system/identity"
	"github.com/lessonhub-app/lessonhub/internal/app/system/loginid"
	"go.uber.org/zap"
)

// Result tallies one import run.
type Result struct {
	Created int
	Skipped int
	Failed  int
}

// Run registers every account. Already-registered usernames count as
// skipped; any other gateway failure counts as failed and is logged with
// the username.
func Run(ctx context.Context, gw identity.Gateway, accounts []accountfile.Account, logger *zap.Logger) Result {
	var res Result
	for _, acct := range accounts {
		email := loginid.SynthesizeEmail(acct.Username)
		_, err := gw.SignUp(ctx, email, acct.Password, acct.Username)
		switch {
		case err == nil:
			res.Created++
		case identity.KindOf(err) == identity.KindAlreadyRegistered:
			res.Skipped++
			logger.Info("username already registered; skipping",
				zap.String("username", acct.Username))
		default:
			res.Failed++
			logger.Error("account creation failed",
				zap.String("username", acct.Username),
				zap.Error(err))
		}
	}
	return res
}
