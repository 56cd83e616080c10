/*
Package report consumes the outcome stream of a scan: it passes findings and
progress on to a [Sink] and sums up the scan in a [Summary].

A [Board] is a Sink keeping the findings together with the reachability
qualities of their addresses, for rendering them over and over again while
the scan and the optional address verifications progress.
*/
package report
