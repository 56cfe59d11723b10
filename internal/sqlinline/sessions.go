package sqlinline

const QInsertSession = `--sql ee45bdff-5e3b-4601-a0ce-0f5df3cfc785
insert into sessions (id, user_id, ip, country, expires_at, created_at)
values ($1::uuid, $2::uuid, $3::text, $4::text, $5::timestamptz, now());
`

const QSelectSessionByID = `--sql 297f879e-c5e0-44ac-bbb7-f52ae83d89e1
select id, user_id, ip, country, expires_at, created_at
from sessions
where id = $1::uuid
limit 1;
`

const QDeleteSession = `--sql c544a5f3-bbd5-4b75-a6f0-f4c41fc658f9
delete from sessions
where id = $1::uuid;
`

const QDeleteExpiredSessions = `--sql 0c2612a6-db68-48de-b05d-1d6a9c1dbe08
delete from sessions
where expires_at < now();
`
