// Package rule defines the contracts shared by every style rule in
// stylecheck: the Rule capability the configuration engine configures,
// the Registrar surface plugins register through, and the Problem type
// rules report.
//
// A rule is identified by a unique option name. The engine matches
// configuration keys against option names and hands each rule its raw
// settings value; validating that value is the rule's own job.
package rule
