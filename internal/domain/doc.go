// Package domain contains the core entities of the word store: users, word
// records, quiz questions and the paging/sorting vocabulary shared by the
// server and the client. It has no dependencies on storage or transport.
package domain
