/*
Package session keeps the live editing sessions of a process.

Each session is exclusive to one path: opening a path that another live session edits
is refused. Saves run under a per-path lock, ref-counted so idle locks are collected,
and optionally under a distributed lock so replicas sharing a store never write the
same path at once.
*/
package session
