// Package parallel drains a shared job stack with a bounded pool of workers.
package parallel
