// Package services contains the application services behind the HTTP
// handlers: the cached data service answering the dashboard's queries, the
// Excel export, and the health reporter. Services own the dataset cache
// and its invalidation; handlers stay thin.
package services
