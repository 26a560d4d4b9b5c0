/*
Package observability provides tools for monitoring formations.

It binds Prometheus collectors and structured logging to the lifecycle hooks
a Formation fires on role updates, training runs and document reads.
*/
package observability
