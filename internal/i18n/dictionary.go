package i18n

// dictionaries holds the per-locale message catalogs, keyed "section.name".
var dictionaries = map[string]map[string]string{
	"en": {
		"common.error":   "Something went wrong. Please try again.",
		"common.saved":   "Saved.",
		"common.deleted": "Deleted.",

		"auth.unauthorized":     "You must be signed in to do that.",
		"auth.usernameTaken":    "This username is already taken.",
		"auth.usernameSaveError": "Failed to set username",

		"friend.requestSent":            "Request sent",
		"friend.requestMissingError":    "Error: Request no longer exists",
		"friend.requestNotPendingError": "Error: Request is not pending",
		"friend.acceptError":            "Error accepting friend request: {{message}}",
		"friend.rejectError":            "Error rejecting friend request: {{message}}",
		"friend.deleteMatchError":       "Error deleting the match.",
		"friend.saveMatchError":         "Error saving the match.",

		"group.createError":             "Error creating group. Please try again.",
		"group.deleteGroupError":        "Error deleting the group.",
		"group.deleteGroupUnauthorized": "Only the admin can delete the group.",
		"group.deleteMatchError":        "Error deleting the match.",
		"group.deleteMatchUnauthorized": "Only the player who recorded the match can delete it.",
		"group.addMemberError":          "Error adding member.",
		"group.saveMatchError":          "Error saving the match.",
		"group.invalidTeams":            "Each team needs at least one player and no player can be on both teams.",
		"group.unregisteredNameExists":  "A guest with this name already exists in this group.",
		"group.createUnregisteredError": "Error creating guest player.",
		"group.linkUserError":           "Error linking user.",
		"group.notFound":                "Group not found.",
		"group.membersCount":            "{{count}} members",
	},
	"it": {
		"common.error":   "Qualcosa è andato storto. Riprova.",
		"common.saved":   "Salvato.",
		"common.deleted": "Eliminato.",

		"auth.unauthorized":     "Devi aver effettuato l'accesso per farlo.",
		"auth.usernameTaken":    "Questo nome utente è già in uso.",
		"auth.usernameSaveError": "Impossibile salvare il nome utente",

		"friend.requestSent":            "Richiesta inviata",
		"friend.requestMissingError":    "Errore: la richiesta non esiste più",
		"friend.requestNotPendingError": "Errore: la richiesta non è più in attesa",
		"friend.acceptError":            "Errore nell'accettazione della richiesta: {{message}}",
		"friend.rejectError":            "Errore nel rifiuto della richiesta: {{message}}",
		"friend.deleteMatchError":       "Errore durante la cancellazione della partita.",
		"friend.saveMatchError":         "Errore durante il salvataggio della partita.",

		"group.createError":             "Errore nella creazione del gruppo. Riprova.",
		"group.deleteGroupError":        "Errore durante l'eliminazione del gruppo.",
		"group.deleteGroupUnauthorized": "Solo l'admin può eliminare il gruppo.",
		"group.deleteMatchError":        "Errore durante la cancellazione della partita.",
		"group.deleteMatchUnauthorized": "Solo il giocatore che ha registrato la partita può eliminarla.",
		"group.addMemberError":          "Errore durante l'aggiunta del membro.",
		"group.saveMatchError":          "Errore durante il salvataggio della partita.",
		"group.invalidTeams":            "Ogni squadra deve avere almeno un giocatore e nessun giocatore può essere in entrambe.",
		"group.unregisteredNameExists":  "Esiste già un ospite con questo nome in questo gruppo.",
		"group.createUnregisteredError": "Errore durante la creazione dell'ospite.",
		"group.linkUserError":           "Errore durante il collegamento.",
		"group.notFound":                "Gruppo non trovato.",
		"group.membersCount":            "{{count}} membri",
	},
}
