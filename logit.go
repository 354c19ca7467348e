// Package logit estimates time sheets from commit history. The time spent on
// a commit is the time since the author's previous commit, across every
// repository read, capped so that nights and lunch breaks don't count.
//
// Related packages: config, estimate, model, report, runner, vcs, vcs/gitcli,
// vcs/gogit
package logit

import "github.com/jeffrom/logit/config"

// Config holds most of the configuration variables for logit. This struct is
// intended for command-line use, so not all of its attributes are applicable
// to every operation.
//
// See "go doc github.com/jeffrom/logit/config Config" for more information.
type Config = config.Config
