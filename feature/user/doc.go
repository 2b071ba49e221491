// Package user manages student, teacher and admin accounts.
//
// Accounts of each kind live in their own profile table keyed by `sid`, `tid` or
// `aid`. Bulk additions are reconciled against stored rows first: accounts that
// already exist are reported back, the rest are stamped with the kind's default
// role and a hashed password and inserted in one transaction.
//
// # HTTP Endpoints
//
//   - GET    /get_user       : profile of the caller merged with its session identity.
//   - POST   /user/add       : add one account.
//   - POST   /user/import    : add a batch of accounts.
//   - DELETE /user/delete    : delete accounts; deleting yourself is refused.
//   - GET    /user/list      : paginated, filtered listing.
//   - PATCH  /user/password  : change a password after checking the old one.
//   - PUT    /user/reset     : reset a password to the configured default.
//   - PUT    /user/update    : partial profile update.
//
// Every endpoint answers with the response envelope. Code 1 reports an existing
// account or a wrong old password, 2 a missing account, 400 bad input and 401 a
// missing permission.
package user
