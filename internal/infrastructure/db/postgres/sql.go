package postgres

// events

const insertEventSQL = `
INSERT INTO events (name, description, address, occurs_at, organizer_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING id
`

const getEventSQL = `
SELECT id, name, description, address, occurs_at, organizer_id
FROM events WHERE id = $1
`

const updateEventSQL = `
UPDATE events SET
  name=$2, description=$3, address=$4, occurs_at=$5
WHERE id=$1
`

const deleteEventSQL = `DELETE FROM events WHERE id = $1`

// attendees

const listAttendeesSQL = `
SELECT id, event_id, user_id, answer
FROM attendees WHERE event_id = $1
ORDER BY id
`

const getAttendeeSQL = `
SELECT id, event_id, user_id, answer
FROM attendees WHERE event_id = $1 AND user_id = $2
`

const upsertAttendeeSQL = `
INSERT INTO attendees (event_id, user_id, answer)
VALUES ($1,$2,$3)
ON CONFLICT (event_id, user_id) DO UPDATE SET answer = EXCLUDED.answer
RETURNING id
`

// users

const insertUserSQL = `
INSERT INTO users (username, password_hash, email, first_name, last_name)
VALUES ($1,$2,$3,$4,$5)
RETURNING id
`

const getUserByIDSQL = `
SELECT id, username, password_hash, email, first_name, last_name
FROM users WHERE id = $1
`

const getUserByUsernameSQL = `
SELECT id, username, password_hash, email, first_name, last_name
FROM users WHERE username = $1
`
