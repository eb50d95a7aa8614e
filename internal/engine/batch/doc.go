// Package batch evaluates many named ECT scenarios concurrently.
//
// Scenarios are independent, so they run on a bounded errgroup (one worker
// per CPU by default). Outcomes keep the input order, and a scenario whose
// inputs fail validation is recorded on its Outcome instead of aborting the
// batch. Progress is tracked with a thread-safe Progress for UI updates.
package batch
