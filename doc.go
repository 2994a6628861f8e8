// Package mime builds deliverable MIME email messages from scratch: it does
// not parse or transport mail, it only emits bytes that conform to RFC 5322,
// RFC 2045-2047, RFC 2046, RFC 2231, and RFC 5321.
//
// The message package contains the top-level assembler. Headers live under
// header and its field/param sub-packages: field provides the RFC 2047
// encoded-word tokenizer and folding, param provides the RFC 2231 parameter
// continuation encoder. transfer implements the three Content-Transfer-Encodings
// (7bit, base64, quoted-printable) in both one-shot and streaming form.
// address implements a from-scratch RFC 5321/5322 mailbox parser. body
// describes the recursive body tree (plain text, rich text, HTML with
// embedded resources, file attachments) and turns it into a lazy fragment
// stream during assembly. boundary generates the multipart boundary tokens
// used to frame those parts.
//
// None of this transmits mail. Callers pipe the resulting bytes into a local
// MTA or base64-wrap them for a submission API.
package mime
