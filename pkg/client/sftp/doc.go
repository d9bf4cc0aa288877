// Package sftp implements the client contract over the SSH File Transfer
// Protocol. It dials an SSH connection, negotiates an SFTP subsystem
// session and maps the protocol's file attributes onto the canonical
// entry model, including ownership and access times which SFTP reports
// natively.
package sftp
