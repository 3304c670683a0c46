// ABOUTME: Key schema for the badger-backed store.
// ABOUTME: Five record keyspaces plus secondary index keys maintained per write.
package store

// Record keys are "<store>:<id>" with JSON-encoded values. Secondary
// indexes are dedicated keys written in the same transaction as their
// record; index values hold the record id.
//
//	idx:exercise:name:<name>                              -> exercise id (unique)
//	idx:set:training:<trainingId>:<setId>                 -> set id
//	idx:set:exercise:<exerciseId>:<setId>                 -> set id
//	idx:set:extraining:<exerciseId>:<trainingId>:<setId>  -> set id
//	idx:round:set:<setId>:<roundId>                       -> round id
//
// Ids are UUIDs and never contain the ':' separator. Exercise names may,
// but the name index is only ever read by exact key, never prefix-scanned.
const (
	exercisePrefix = "exercise:"
	trainingPrefix = "training:"
	setPrefix      = "set:"
	roundPrefix    = "round:"
	userKey        = "user"

	idxExerciseName  = "idx:exercise:name:"
	idxSetTraining   = "idx:set:training:"
	idxSetExercise   = "idx:set:exercise:"
	idxSetExTraining = "idx:set:extraining:"
	idxRoundSet      = "idx:round:set:"
)

func exerciseKey(id string) []byte { return []byte(exercisePrefix + id) }
func trainingKey(id string) []byte { return []byte(trainingPrefix + id) }
func setKey(id string) []byte      { return []byte(setPrefix + id) }
func roundKey(id string) []byte    { return []byte(roundPrefix + id) }

func exerciseNameKey(name string) []byte { return []byte(idxExerciseName + name) }

func setTrainingIdxKey(trainingID, setID string) []byte {
	return []byte(idxSetTraining + trainingID + ":" + setID)
}

func setTrainingIdxPrefix(trainingID string) []byte {
	return []byte(idxSetTraining + trainingID + ":")
}

func setExerciseIdxKey(exerciseID, setID string) []byte {
	return []byte(idxSetExercise + exerciseID + ":" + setID)
}

func setExerciseIdxPrefix(exerciseID string) []byte {
	return []byte(idxSetExercise + exerciseID + ":")
}

func setExTrainingIdxKey(exerciseID, trainingID, setID string) []byte {
	return []byte(idxSetExTraining + exerciseID + ":" + trainingID + ":" + setID)
}

func setExTrainingIdxPrefix(exerciseID, trainingID string) []byte {
	return []byte(idxSetExTraining + exerciseID + ":" + trainingID + ":")
}

func roundSetIdxKey(setID, roundID string) []byte {
	return []byte(idxRoundSet + setID + ":" + roundID)
}

func roundSetIdxPrefix(setID string) []byte {
	return []byte(idxRoundSet + setID + ":")
}
