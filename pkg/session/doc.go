/*
Package session keeps one live clicktree component per host session.

Components are created on first use, rehydrated from the last persisted
snapshot when one exists, and snapshotted back to the store after every
interaction. Access to a session is serialized by a reference-counted local
mutex and, optionally, a distributed lock shared across replicas.
*/
package session
