/*
Package inflight refuses overlapping triggers of the same action.

A Guard holds one entry per action key while its request is in flight. A second
trigger of the same key is refused with domain.ErrInFlight instead of issuing a
duplicate call, which is what disabling the trigger control does in a browser.
An optional ports.Locker extends the guard across processes.
*/
package inflight
