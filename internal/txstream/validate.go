package txstream

import "slices"

// IsValidUpdate reports whether update is a transaction update matched by the
// filter group named filterName and carrying the full
// transaction → transaction → message path.
//
// It is a shape gate only. A false result is the normal outcome for updates the
// session does not care about and is not an error.
func IsValidUpdate(update UpdateEnvelope, filterName string) bool {
	if update.Kind != UpdateKindTransaction {
		return false
	}

	if !slices.Contains(update.Filters, filterName) {
		return false
	}

	tx := update.Transaction
	return tx != nil &&
		tx.Info != nil &&
		tx.Info.Transaction != nil &&
		tx.Info.Transaction.Message != nil
}
