// Package http contains the chi HTTP handlers of the dashboard API. The
// handlers bind and validate requests, delegate to the services layer, and
// render JSON (or a workbook download) with centralized error mapping.
package http
